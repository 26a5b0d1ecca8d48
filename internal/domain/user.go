package domain

import (
	"context"
	"time"
)

// User-related domain errors.
var (
	ErrUserNotFound       = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid email or password"}
	ErrSessionExpired     = &Error{Code: EUNAUTHORIZED, Message: "Session expired"}
	ErrDuplicateEmail     = &Error{Code: ECONFLICT, Message: "Email already registered"}
)

// Role controls what a staff user may do. Only admins edit the catalog.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// User is a staff account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserStore persists staff accounts and their sessions.
type UserStore interface {
	// Create persists a new user.
	Create(ctx context.Context, user *User) error

	// GetByEmail returns a user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetBySession returns the user owning a non-expired session token.
	GetBySession(ctx context.Context, token string) (*User, error)

	// CreateSession stores a session token for the user.
	CreateSession(ctx context.Context, userID, token string, expiresAt time.Time) error

	// DeleteSession invalidates a session token.
	DeleteSession(ctx context.Context, token string) error
}
