package auth

import (
	"errors"
	"testing"

	"fitfeed/internal/domain"
)

func TestValidateSignup(t *testing.T) {
	t.Parallel()

	policy := DefaultPasswordPolicy()

	tests := []struct {
		name     string
		email    string
		password string
		username string
		wantErr  error
	}{
		{"valid", "a@b.com", "Str0ng!Pass", "alice_01", nil},
		{"uppercase input normalized", "A@B.com", "Str0ng!Pass", "Alice_01", nil},
		{"empty email", "", "Str0ng!Pass", "alice", domain.ErrFieldsRequired},
		{"empty password", "a@b.com", "", "alice", domain.ErrFieldsRequired},
		{"empty username", "a@b.com", "Str0ng!Pass", "", domain.ErrFieldsRequired},
		{"bad email", "not-an-email", "Str0ng!Pass", "alice", domain.ErrInvalidEmail},
		{"email without host dot", "a@localhost", "Str0ng!Pass", "alice", domain.ErrInvalidEmail},
		{"weak password", "a@b.com", "password", "alice", domain.ErrWeakPassword},
		{"no symbol", "a@b.com", "Passw0rd", "alice", domain.ErrWeakPassword},
		{"bad username charset", "a@b.com", "Str0ng!Pass", "al ice", domain.ErrUsernameCharset},
		{"username with dash", "a@b.com", "Str0ng!Pass", "al-ice", domain.ErrUsernameCharset},
		{"username too short", "a@b.com", "Str0ng!Pass", "al", domain.ErrUsernameLength},
		{"username too long", "a@b.com", "Str0ng!Pass", "a123456789012345678901234567", domain.ErrUsernameLength},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := ValidateSignup(tt.email, tt.password, tt.username, policy)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSignup_Normalizes(t *testing.T) {
	t.Parallel()

	email, username, err := ValidateSignup("A@B.com", "Str0ng!Pass", "Alice_01", DefaultPasswordPolicy())
	if err != nil {
		t.Fatalf("ValidateSignup error: %v", err)
	}
	if email != "a@b.com" {
		t.Fatalf("email not normalized: %q", email)
	}
	if username != "alice_01" {
		t.Fatalf("username not normalized: %q", username)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	for _, u := range []string{"Alice_01", "BOB", "carol", "  Dave  "} {
		once := NormalizeUsername(u)
		if NormalizeUsername(once) != once {
			t.Fatalf("normalization not idempotent for %q", u)
		}
	}
	for _, e := range []string{"A@B.com", "x@Y.ORG "} {
		once := NormalizeEmail(e)
		if NormalizeEmail(once) != once {
			t.Fatalf("normalization not idempotent for %q", e)
		}
	}
}

func TestPasswordPolicy_Satisfied(t *testing.T) {
	t.Parallel()

	policy := DefaultPasswordPolicy()

	if !policy.Satisfied("Str0ng!Pass") {
		t.Fatalf("expected Str0ng!Pass to satisfy default policy")
	}
	if policy.Satisfied("short1!") {
		t.Fatalf("expected short password to fail")
	}

	// pluggable thresholds: a relaxed policy accepts what the default rejects
	relaxed := PasswordPolicy{MinLength: 4}
	if !relaxed.Satisfied("abcd") {
		t.Fatalf("expected relaxed policy to accept abcd")
	}
}
