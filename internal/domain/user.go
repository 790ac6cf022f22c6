package domain

import "time"

// User represents an account holder. Email and username are stored
// lowercase and are unique across all users.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	AvatarKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
