// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vitraworks/vitra/internal/auth"
	"github.com/vitraworks/vitra/internal/domain"
)

// AdminConfig contains configuration for the initial admin user.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// Validate checks that the admin configuration is valid.
func (c *AdminConfig) Validate() error {
	if c.Email == "" {
		return errors.New("admin email is required")
	}
	if c.Password == "" {
		return errors.New("admin password is required")
	}
	if len(c.Password) < 12 {
		return errors.New("admin password must be at least 12 characters")
	}
	return nil
}

// EnsureAdmin creates the initial admin user if it doesn't exist.
// Idempotent - safe to call on every startup.
//
// If the admin user already exists (by email), it returns without error.
// If cfg is nil or has empty Email/Password, it logs a warning and skips.
func EnsureAdmin(ctx context.Context, store domain.UserStore, cfg *AdminConfig, logger *slog.Logger) error {
	if cfg == nil || cfg.Email == "" || cfg.Password == "" {
		logger.Warn("bootstrap: skipping admin creation - VITRA_ADMIN_EMAIL or VITRA_ADMIN_PASSWORD not set",
			"hint", "Set these environment variables to create an admin user on first startup",
		)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid admin configuration: %w", err)
	}

	if _, err := store.GetByEmail(ctx, cfg.Email); err == nil {
		logger.Info("bootstrap: admin user already exists", "email", cfg.Email)
		return nil
	} else if !domain.IsCode(err, domain.ENOTFOUND) {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        cfg.Email,
		Name:         cfg.Name,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := store.Create(ctx, user); err != nil {
		// Lost a race with another instance; the admin exists either way.
		if domain.IsCode(err, domain.ECONFLICT) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("bootstrap: created admin user", "email", cfg.Email)
	return nil
}
