package password

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// AdminCost is the bcrypt cost for admin passwords
	AdminCost = 12
	// PinCost is the bcrypt cost for 4-digit user PINs
	PinCost = 10
)

// Hash hashes an admin password using bcrypt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), AdminCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// HashPin hashes a user PIN using bcrypt
func HashPin(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), PinCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password or PIN with a hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
