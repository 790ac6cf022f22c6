package memory

import (
	"context"
	"sync"

	"fitfeed/internal/domain"
	"fitfeed/internal/repository"
)

type edge struct {
	follower string
	followee string
}

type FollowRepository struct {
	mu    sync.RWMutex
	edges []edge
	users *UserRepository
}

func NewFollowRepository(users *UserRepository) *FollowRepository {
	return &FollowRepository{users: users}
}

var _ repository.FollowRepository = (*FollowRepository)(nil)

func (r *FollowRepository) Init(ctx context.Context) error { return nil }

func (r *FollowRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.follower == followerID && e.followee == followeeID {
			return nil
		}
	}
	r.edges = append(r.edges, edge{follower: followerID, followee: followeeID})
	return nil
}

func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.edges {
		if e.follower == followerID && e.followee == followeeID {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *FollowRepository) Followers(ctx context.Context, userID string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []domain.User
	for _, e := range r.edges {
		if e.followee == userID {
			if u, err := r.users.GetByID(ctx, e.follower); err == nil {
				users = append(users, *u)
			}
		}
	}
	return users, nil
}

func (r *FollowRepository) Following(ctx context.Context, userID string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []domain.User
	for _, e := range r.edges {
		if e.follower == userID {
			if u, err := r.users.GetByID(ctx, e.followee); err == nil {
				users = append(users, *u)
			}
		}
	}
	return users, nil
}

func (r *FollowRepository) Counts(ctx context.Context, userID string) (int64, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var followers, following int64
	for _, e := range r.edges {
		if e.followee == userID {
			followers++
		}
		if e.follower == userID {
			following++
		}
	}
	return followers, following, nil
}
