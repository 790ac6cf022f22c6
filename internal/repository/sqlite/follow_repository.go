package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"fitfeed/internal/domain"
	"fitfeed/internal/repository"
)

const createFollowsTable = `
CREATE TABLE IF NOT EXISTS follows (
	follower_id TEXT NOT NULL REFERENCES users(id),
	followee_id TEXT NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	PRIMARY KEY (follower_id, followee_id)
);
`

const createFollowsIndex = `
CREATE INDEX IF NOT EXISTS idx_follows_followee ON follows(followee_id);
`

type FollowRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) repository.FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFollowsTable); err != nil {
		return fmt.Errorf("create follows table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createFollowsIndex); err != nil {
		return fmt.Errorf("create follows index: %w", err)
	}
	return nil
}

// Follow records a follower→followee edge. Re-following is a no-op.
func (r *FollowRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO follows (follower_id, followee_id, created_at)
VALUES (?, ?, CURRENT_TIMESTAMP)`,
		followerID, followeeID,
	)
	if err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

// Unfollow removes the edge if present. Unfollowing a non-followed
// user is a no-op.
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	_, err := r.db.ExecContext(ctx, `
DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID,
	)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) Followers(ctx context.Context, userID string) ([]domain.User, error) {
	return r.edgeUsers(ctx, `
SELECT u.id, u.email, u.username, u.password_hash, u.avatar_key, u.created_at, u.updated_at
FROM follows f
JOIN users u ON u.id = f.follower_id
WHERE f.followee_id = ?
ORDER BY f.created_at`, userID)
}

func (r *FollowRepository) Following(ctx context.Context, userID string) ([]domain.User, error) {
	return r.edgeUsers(ctx, `
SELECT u.id, u.email, u.username, u.password_hash, u.avatar_key, u.created_at, u.updated_at
FROM follows f
JOIN users u ON u.id = f.followee_id
WHERE f.follower_id = ?
ORDER BY f.created_at`, userID)
}

func (r *FollowRepository) Counts(ctx context.Context, userID string) (int64, int64, error) {
	var followers, following int64
	err := r.db.QueryRowContext(ctx, `
SELECT
	(SELECT COUNT(*) FROM follows WHERE followee_id = ?),
	(SELECT COUNT(*) FROM follows WHERE follower_id = ?)`,
		userID, userID,
	).Scan(&followers, &following)
	if err != nil {
		return 0, 0, fmt.Errorf("count follows: %w", err)
	}
	return followers, following, nil
}

func (r *FollowRepository) edgeUsers(ctx context.Context, query, userID string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query follows: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("follows rows: %w", err)
	}
	return users, nil
}
