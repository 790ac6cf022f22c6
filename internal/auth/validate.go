package auth

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"fitfeed/internal/domain"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

const (
	usernameMinLen = 3
	usernameMaxLen = 25
)

// PasswordPolicy is the composition rule a plaintext password must
// satisfy at signup. The zero value accepts everything; use
// DefaultPasswordPolicy for the standard thresholds.
type PasswordPolicy struct {
	MinLength    int
	MinLowercase int
	MinUppercase int
	MinDigits    int
	MinSymbols   int
}

// DefaultPasswordPolicy mirrors the usual strong-password rule:
// at least 8 characters with one lowercase, one uppercase, one digit
// and one symbol.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:    8,
		MinLowercase: 1,
		MinUppercase: 1,
		MinDigits:    1,
		MinSymbols:   1,
	}
}

// Satisfied reports whether password meets the policy.
func (p PasswordPolicy) Satisfied(password string) bool {
	var lower, upper, digits, symbols, length int
	for _, r := range password {
		length++
		switch {
		case unicode.IsLower(r):
			lower++
		case unicode.IsUpper(r):
			upper++
		case unicode.IsDigit(r):
			digits++
		default:
			symbols++
		}
	}
	return length >= p.MinLength &&
		lower >= p.MinLowercase &&
		upper >= p.MinUppercase &&
		digits >= p.MinDigits &&
		symbols >= p.MinSymbols
}

// NormalizeEmail lowercases and trims an email address. Idempotent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername lowercases and trims a username. Idempotent.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateSignup normalizes the credential triple and checks it against
// the signup rules. It returns the normalized email and username, or
// the first failed rule as a domain error. Pure; no side effects.
func ValidateSignup(email, password, username string, policy PasswordPolicy) (string, string, error) {
	email = NormalizeEmail(email)
	username = NormalizeUsername(username)

	if email == "" || password == "" || username == "" {
		return "", "", domain.ErrFieldsRequired
	}
	if !validEmail(email) {
		return "", "", domain.ErrInvalidEmail
	}
	if !policy.Satisfied(password) {
		return "", "", domain.ErrWeakPassword
	}
	if err := ValidateUsername(username); err != nil {
		return "", "", err
	}
	return email, username, nil
}

// ValidateUsername checks an already-normalized username against the
// charset and length rules.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return domain.ErrUsernameCharset
	}
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return domain.ErrUsernameLength
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	// mail.ParseAddress accepts local-only addresses; require a dot in
	// the host part like common email validators do.
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
