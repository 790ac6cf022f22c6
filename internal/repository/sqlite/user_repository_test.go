package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitfeed/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, repo *UserRepository, email, username string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, Username: username, PasswordHash: "digest"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func newUserRepo(t *testing.T, db *sql.DB) *UserRepository {
	t.Helper()
	repo := NewUserRepository(db).(*UserRepository)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := newUserRepo(t, db)
	ctx := context.Background()

	created := seedUser(t, repo, "a@b.com", "alice")
	assert.NotEmpty(t, created.ID)

	byEmail, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "alice", byEmail.Username)
	assert.Equal(t, "digest", byEmail.PasswordHash)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", byID.Email)

	_, err = repo.GetByEmail(ctx, "missing@b.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	db := openTestDB(t)
	repo := newUserRepo(t, db)
	ctx := context.Background()

	seedUser(t, repo, "a@b.com", "alice")

	err := repo.Create(ctx, &domain.User{Email: "a@b.com", Username: "bob", PasswordHash: "d"})
	assert.ErrorIs(t, err, domain.ErrEmailInUse)

	err = repo.Create(ctx, &domain.User{Email: "b@c.com", Username: "alice", PasswordHash: "d"})
	assert.ErrorIs(t, err, domain.ErrUsernameInUse)
}

func TestUserRepository_Exists(t *testing.T) {
	db := openTestDB(t)
	repo := newUserRepo(t, db)
	ctx := context.Background()

	seedUser(t, repo, "a@b.com", "alice")

	exists, err := repo.ExistsByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@b.com")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UpdateUsername(t *testing.T) {
	db := openTestDB(t)
	repo := newUserRepo(t, db)
	ctx := context.Background()

	alice := seedUser(t, repo, "a@b.com", "alice")
	seedUser(t, repo, "b@c.com", "bob")

	require.NoError(t, repo.UpdateUsername(ctx, alice.ID, "alice_2"))
	updated, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice_2", updated.Username)

	// unique constraint is the authoritative check
	err = repo.UpdateUsername(ctx, alice.ID, "bob")
	assert.ErrorIs(t, err, domain.ErrUsernameInUse)

	err = repo.UpdateUsername(ctx, "missing-id", "carol")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_UpdateAvatarKeyAndList(t *testing.T) {
	db := openTestDB(t)
	repo := newUserRepo(t, db)
	ctx := context.Background()

	alice := seedUser(t, repo, "a@b.com", "alice")
	seedUser(t, repo, "b@c.com", "bob")

	require.NoError(t, repo.UpdateAvatarKey(ctx, alice.ID, "avatars/"+alice.ID))
	updated, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "avatars/"+alice.ID, updated.AvatarKey)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
