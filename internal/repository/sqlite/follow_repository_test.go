package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_EdgeLifecycle(t *testing.T) {
	db := openTestDB(t)
	users := newUserRepo(t, db)
	follows := NewFollowRepository(db).(*FollowRepository)
	ctx := context.Background()
	require.NoError(t, follows.Init(ctx))

	alice := seedUser(t, users, "a@b.com", "alice")
	bob := seedUser(t, users, "b@c.com", "bob")
	carol := seedUser(t, users, "c@d.com", "carol")

	require.NoError(t, follows.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, follows.Follow(ctx, carol.ID, bob.ID))
	// duplicate edge is ignored
	require.NoError(t, follows.Follow(ctx, alice.ID, bob.ID))

	followers, err := follows.Followers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.ElementsMatch(t, []string{"alice", "carol"},
		[]string{followers[0].Username, followers[1].Username})

	following, err := follows.Following(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	nFollowers, nFollowing, err := follows.Counts(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), nFollowers)
	assert.Equal(t, int64(0), nFollowing)

	require.NoError(t, follows.Unfollow(ctx, alice.ID, bob.ID))
	nFollowers, _, err = follows.Counts(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), nFollowers)

	// unfollowing a non-followed user is a no-op
	require.NoError(t, follows.Unfollow(ctx, alice.ID, carol.ID))
}
