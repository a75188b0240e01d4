package users

import "time"

// User is the profile kept for an authenticated caller.
type User struct {
	ID         string
	Email      string
	FullName   string
	PictureURL string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Identity is what the auth layer knows about the caller.
type Identity struct {
	UserID     string
	Email      string
	Name       string
	PictureURL string
}
