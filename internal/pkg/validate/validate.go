// Package validate holds the input format rules shared by every handler.
package validate

import "regexp"

var (
	telephoneRe = regexp.MustCompile(`^07[0-9]{8}$`)
	pinRe       = regexp.MustCompile(`^[0-9]{4}$`)
)

// Telephone reports whether s is a valid Rwandan mobile number (07 + 8 digits)
func Telephone(s string) bool {
	return telephoneRe.MatchString(s)
}

// Pin reports whether s is a valid user PIN (exactly 4 digits)
func Pin(s string) bool {
	return pinRe.MatchString(s)
}

// AdminPassword reports whether s meets the admin password length rule
func AdminPassword(s string) bool {
	return len(s) >= 6
}
