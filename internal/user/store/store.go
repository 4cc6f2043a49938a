// Package store provides an interface for user storage operations.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is the persisted account record. The password travels only in its
// hashed form.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore is an interface for user storage operations.
type UserStore interface {
	// Create persists a new user. Returns ErrUserAlreadyExists when the
	// email is taken.
	Create(ctx context.Context, user *User) error

	// FindByEmail retrieves a user by email (case-sensitive, as stored).
	// Returns ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*User, error)
}
