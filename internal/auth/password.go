package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrPasswordMismatch indicates the plaintext does not match the digest.
	ErrPasswordMismatch = errors.New("password mismatch")
	// ErrCorruptDigest indicates a stored digest bcrypt cannot parse.
	// This is a bad record, not a bad password.
	ErrCorruptDigest = errors.New("corrupt password digest")
)

// PasswordHasher produces and verifies salted bcrypt digests. The cost
// is injectable so tests can run at bcrypt.MinCost.
type PasswordHasher struct {
	cost        int
	dummyDigest []byte
}

// NewPasswordHasher returns a hasher with the given work factor.
// Costs outside bcrypt's valid range fall back to the default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Precomputed digest for VerifyDummy. The plaintext is irrelevant;
	// callers always compare against a password that cannot match it.
	dummy, err := bcrypt.GenerateFromPassword([]byte("fitfeed-timing-pad"), cost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt dummy digest: %v", err))
	}
	return &PasswordHasher{cost: cost, dummyDigest: dummy}
}

// Hash returns a salted one-way digest of plaintext. Two calls on the
// same input produce different digests.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify compares plaintext against a stored digest. It returns nil on
// a match, ErrPasswordMismatch on a clean mismatch, and wraps
// ErrCorruptDigest when the digest itself is unreadable.
func (h *PasswordHasher) Verify(plaintext, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("%w: %v", ErrCorruptDigest, err)
	}
}

// VerifyDummy burns one bcrypt comparison against a fixed digest so a
// lookup-miss path costs about the same as a real password check.
func (h *PasswordHasher) VerifyDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyDigest, []byte(plaintext))
}
