package service

import (
	"context"

	"fitfeed/internal/domain"
	"fitfeed/internal/repository"
)

// FollowService manages the social graph between users.
type FollowService interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	Followers(ctx context.Context, userID string) ([]domain.User, error)
	Following(ctx context.Context, userID string) ([]domain.User, error)
	Counts(ctx context.Context, userID string) (followers, following int64, err error)
}

type followService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
}

func NewFollowService(follows repository.FollowRepository, users repository.UserRepository) FollowService {
	return &followService{follows: follows, users: users}
}

func (s *followService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return domain.ErrSelfFollow
	}
	if _, err := s.users.GetByID(ctx, followeeID); err != nil {
		return err
	}
	return s.follows.Follow(ctx, followerID, followeeID)
}

func (s *followService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if _, err := s.users.GetByID(ctx, followeeID); err != nil {
		return err
	}
	return s.follows.Unfollow(ctx, followerID, followeeID)
}

func (s *followService) Followers(ctx context.Context, userID string) ([]domain.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stripHashes(users), nil
}

func (s *followService) Following(ctx context.Context, userID string) ([]domain.User, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.follows.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stripHashes(users), nil
}

func (s *followService) Counts(ctx context.Context, userID string) (int64, int64, error) {
	return s.follows.Counts(ctx, userID)
}

func stripHashes(users []domain.User) []domain.User {
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users
}
