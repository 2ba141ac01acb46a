package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"gorm.io/gorm"

	"abonizera-api/internal/adapters/persistence/models"
	"abonizera-api/internal/adapters/persistence/repositories"
	"abonizera-api/internal/pkg/password"
)

var (
	ErrTelephoneTaken    = errors.New("telephone already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidPin        = errors.New("invalid PIN")
	ErrUserDisabled      = errors.New("user account is disabled")
	ErrResetTokenInvalid = errors.New("reset token is invalid or expired")
	ErrInvalidStatus     = errors.New("invalid status value")
)

const (
	resetTokenLength = 6
	resetTokenTTL    = 10 * time.Minute
)

// UserService handles end-user accounts, PIN auth and PIN reset
type UserService struct {
	userRepo repositories.UserRepository
	sessions SessionStore
	sms      SMSSender
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, sessions SessionStore, sms SMSSender) *UserService {
	return &UserService{
		userRepo: userRepo,
		sessions: sessions,
		sms:      sms,
	}
}

// UserSignupInput holds the fields for registering an end-user
type UserSignupInput struct {
	Amazina      string
	RefTelephone string
	AhoUherereye string
	Telephone    string
	Pin          string
}

// Signup registers a new end-user account
func (s *UserService) Signup(ctx context.Context, input UserSignupInput) (*models.UserResponse, error) {
	hashed, err := password.HashPin(input.Pin)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Amazina:      input.Amazina,
		RefTelephone: input.RefTelephone,
		AhoUherereye: input.AhoUherereye,
		Telephone:    input.Telephone,
		Pin:          hashed,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTelephoneTaken
		}
		return nil, err
	}

	log.Printf("✅ User registered: %s", user.Telephone)
	return user.ToResponse(), nil
}

// Login authenticates a user by telephone and PIN and mints a session
func (s *UserService) Login(ctx context.Context, telephone, pin string) (*models.UserResponse, string, error) {
	user, err := s.userRepo.GetByTelephone(ctx, telephone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	if !password.Verify(pin, user.Pin) {
		return nil, "", ErrInvalidPin
	}

	if user.Status == models.UserStatusDisabled {
		return nil, "", ErrUserDisabled
	}

	sessionID := s.sessions.Create(SessionIdentity{
		Kind:      SessionKindUser,
		ID:        user.ID,
		Amazina:   user.Amazina,
		Telephone: user.Telephone,
	})

	log.Printf("✅ User logged in: %s", user.Telephone)
	return user.ToResponse(), sessionID, nil
}

// ForgotPassword stores a short-lived reset token for a telephone and
// dispatches it over SMS. The token is never returned to the caller.
func (s *UserService) ForgotPassword(ctx context.Context, telephone string) error {
	user, err := s.userRepo.GetByTelephone(ctx, telephone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	token, err := generateResetToken(resetTokenLength)
	if err != nil {
		return err
	}

	expiry := time.Now().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.Telephone, token, expiry); err != nil {
		return err
	}

	message := fmt.Sprintf("Kode yo guhindura PIN ni: %s. Izarangira mu minota 10.", token)
	if err := s.sms.Send(user.Telephone, message); err != nil {
		// delivery failure must not leak whether a token was stored
		log.Printf("❌ Failed to send reset token to %s: %v", user.Telephone, err)
	}

	return nil
}

// ResetPassword sets a new PIN for a telephone given a valid unexpired
// reset token. The token is single-use and cleared on success.
func (s *UserService) ResetPassword(ctx context.Context, telephone, token, newPin string) error {
	user, err := s.userRepo.GetByResetToken(ctx, telephone, token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	hashed, err := password.HashPin(newPin)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePin(ctx, user.ID, hashed); err != nil {
		return err
	}

	log.Printf("✅ PIN reset for %s", user.Telephone)
	return nil
}

// ListUsers returns all registered users
func (s *UserService) ListUsers(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}
	return responses, nil
}

// GetUser returns a user by id
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateUserStatus activates or disables a user account
func (s *UserService) UpdateUserStatus(ctx context.Context, id uint, status string) (*models.UserResponse, error) {
	if status != models.UserStatusActive && status != models.UserStatusDisabled {
		return nil, ErrInvalidStatus
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.UpdateStatus(ctx, user.ID, status); err != nil {
		return nil, err
	}
	user.Status = status

	log.Printf("✅ User %d status set to %s", user.ID, status)
	return user.ToResponse(), nil
}

// generateResetToken builds a random numeric token of the given length
func generateResetToken(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate reset token: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
