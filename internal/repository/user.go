package repository

import (
	"context"

	"fitfeed/internal/domain"
)

// UserRepository defines persistence operations for User entities.
// Existence checks are best-effort pre-checks; the storage layer's
// unique constraints are the authoritative uniqueness guarantee.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateUsername(ctx context.Context, id, username string) error
	UpdateAvatarKey(ctx context.Context, id, key string) error
	List(ctx context.Context) ([]domain.User, error)
}
