package repository

import (
	"context"

	"fitfeed/internal/domain"
)

// FollowRepository stores the social graph as follower→followee edges,
// indexed by both endpoints.
type FollowRepository interface {
	Init(ctx context.Context) error
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	Followers(ctx context.Context, userID string) ([]domain.User, error)
	Following(ctx context.Context, userID string) ([]domain.User, error)
	Counts(ctx context.Context, userID string) (followers, following int64, err error)
}
