package service

import (
	"context"
	"strings"
	"time"

	"github.com/vitraworks/vitra/internal/auth"
	"github.com/vitraworks/vitra/internal/domain"
)

// sessionTTL is how long a login stays valid.
const sessionTTL = 30 * 24 * time.Hour

// UserService handles staff authentication. It is the identity collaborator
// gating catalog edits and order management.
type UserService struct {
	store domain.UserStore
}

// NewUserService creates a UserService over the given store.
func NewUserService(store domain.UserStore) *UserService {
	return &UserService{store: store}
}

// Login verifies credentials and opens a session. Returns the session token
// to set as a cookie.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		// Same response for unknown email and bad password.
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := GenerateSessionID()
	if err != nil {
		return nil, "", domain.Internal(err, "user.login", "failed to create session")
	}
	if err := s.store.CreateSession(ctx, user.ID, token, time.Now().Add(sessionTTL)); err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout invalidates a session token. Unknown tokens are a no-op.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.DeleteSession(ctx, token)
}

// GetBySession resolves a session token to its user.
func (s *UserService) GetBySession(ctx context.Context, token string) (*domain.User, error) {
	return s.store.GetBySession(ctx, token)
}
