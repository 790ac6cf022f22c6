// Package memory provides map-backed repository implementations.
// They honor the same uniqueness semantics as the sqlite versions and
// back the unit tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fitfeed/internal/domain"
	"fitfeed/internal/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Init(ctx context.Context) error { return nil }

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailInUse
		}
		if u.Username == user.Username {
			return domain.ErrUsernameInUse
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) UpdateUsername(ctx context.Context, id, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.ID != id && u.Username == username {
			return domain.ErrUsernameInUse
		}
	}
	target.Username = username
	target.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) UpdateAvatarKey(ctx context.Context, id, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	target.AvatarKey = key
	target.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}
