package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents an account keyed by its sign-up identifier,
// an email address or an international phone number.
type User struct {
	ID           string
	PasswordHash string
	CreatedAt    time.Time
}

// PasswordHasher is the password hashing primitive used for sign-up and sign-in.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}
