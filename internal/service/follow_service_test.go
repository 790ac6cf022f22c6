package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitfeed/internal/domain"
	"fitfeed/internal/repository/memory"
)

func newTestFollowService(t *testing.T) (FollowService, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	follows := memory.NewFollowRepository(users)
	return NewFollowService(follows, users), users
}

func seedUser(t *testing.T, repo *memory.UserRepository, email, username string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, Username: username, PasswordHash: "x"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestFollowAndUnfollow(t *testing.T) {
	t.Parallel()
	svc, users := newTestFollowService(t)
	ctx := context.Background()

	alice := seedUser(t, users, "a@b.com", "alice")
	bob := seedUser(t, users, "b@c.com", "bob")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	// following twice stays a single edge
	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	followers, err := svc.Followers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)
	assert.Empty(t, followers[0].PasswordHash)

	following, err := svc.Following(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	nFollowers, nFollowing, err := svc.Counts(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), nFollowers)
	assert.Equal(t, int64(0), nFollowing)

	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
	followers, err = svc.Followers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestFollow_SelfRejected(t *testing.T) {
	t.Parallel()
	svc, users := newTestFollowService(t)

	alice := seedUser(t, users, "a@b.com", "alice")
	err := svc.Follow(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, domain.ErrSelfFollow)
}

func TestFollow_UnknownFollowee(t *testing.T) {
	t.Parallel()
	svc, users := newTestFollowService(t)

	alice := seedUser(t, users, "a@b.com", "alice")
	err := svc.Follow(context.Background(), alice.ID, "missing-id")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
