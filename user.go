package sitechat

import (
	"context"
	"time"
)

// User represents a registered account that owns context keys.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserService manages user accounts and credential verification.
// Password hashes never leave the implementation.
type UserService interface {
	// CreateUser registers a new user with the given credentials.
	// Returns ECONFLICT if the email is already registered and EINVALID
	// if email or password is empty.
	CreateUser(ctx context.Context, email, password string) (*User, error)

	// Authenticate verifies credentials and returns the matching user.
	// Returns EUNAUTHORIZED if the email is unknown or the password does
	// not match.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// FindUserByID retrieves a user by ID.
	// Returns ENOTFOUND if the user does not exist.
	FindUserByID(ctx context.Context, id string) (*User, error)
}
