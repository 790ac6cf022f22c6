package service

import (
	"context"
	"errors"
	"fmt"

	"fitfeed/internal/auth"
	"fitfeed/internal/domain"
	"fitfeed/internal/repository"
)

// UserService describes account lifecycle operations. Signup and Login
// return the sanitized user together with a freshly issued session token.
type UserService interface {
	Signup(ctx context.Context, email, password, username string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	EditUsername(ctx context.Context, userID, newUsername string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetAvatarKey(ctx context.Context, userID, key string) error
}

type userService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	issuer *auth.TokenIssuer
	policy auth.PasswordPolicy
}

func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher, issuer *auth.TokenIssuer, policy auth.PasswordPolicy) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		policy: policy,
	}
}

func (s *userService) Signup(ctx context.Context, email, password, username string) (*domain.User, string, error) {
	email, username, err := auth.ValidateSignup(email, password, username, s.policy)
	if err != nil {
		return nil, "", err
	}

	// Best-effort pre-checks; the unique constraints in the repository
	// are the real uniqueness guarantee under concurrent signups.
	if exists, err := s.users.ExistsByEmail(ctx, email); err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	} else if exists {
		return nil, "", domain.ErrEmailInUse
	}
	if exists, err := s.users.ExistsByUsername(ctx, username); err != nil {
		return nil, "", fmt.Errorf("check username: %w", err)
	} else if exists {
		return nil, "", domain.ErrUsernameInUse
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return sanitizeUser(user), token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = auth.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domain.ErrFieldsRequired
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// keep the miss path as expensive as a real comparison so
			// response latency does not reveal whether the account exists
			s.hasher.VerifyDummy(password)
			return nil, "", domain.ErrEmailNotFound
		}
		return nil, "", err
	}

	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", domain.ErrIncorrectPassword
		}
		return nil, "", fmt.Errorf("verify password for %s: %w", user.ID, err)
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return sanitizeUser(user), token, nil
}

func (s *userService) EditUsername(ctx context.Context, userID, newUsername string) (*domain.User, error) {
	newUsername = auth.NormalizeUsername(newUsername)
	if newUsername == "" {
		return nil, domain.ErrEmptyNewUsername
	}
	if err := auth.ValidateUsername(newUsername); err != nil {
		return nil, err
	}

	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Pre-check excludes the requester's own record so renaming to the
	// current username is a no-op rather than a conflict.
	if current.Username != newUsername {
		if exists, err := s.users.ExistsByUsername(ctx, newUsername); err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		} else if exists {
			return nil, domain.ErrUsernameInUse
		}
		if err := s.users.UpdateUsername(ctx, userID, newUsername); err != nil {
			return nil, err
		}
	}

	current.Username = newUsername
	return sanitizeUser(current), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) SetAvatarKey(ctx context.Context, userID, key string) error {
	return s.users.UpdateAvatarKey(ctx, userID, key)
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone
}
