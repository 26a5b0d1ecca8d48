// Package worker runs periodic background maintenance.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// SessionPurger deletes expired session rows.
type SessionPurger interface {
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// SessionSweeper periodically removes expired sessions so the sessions
// table doesn't accumulate dead rows. Lookups already ignore expired
// sessions; this is pure housekeeping.
type SessionSweeper struct {
	purger   SessionPurger
	interval time.Duration
	logger   *slog.Logger
}

// NewSessionSweeper creates a sweeper. A non-positive interval defaults
// to one hour.
func NewSessionSweeper(purger SessionPurger, interval time.Duration, logger *slog.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionSweeper{
		purger:   purger,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on a ticker until the context is canceled. Call in a goroutine.
func (s *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	deleted, err := s.purger.DeleteExpiredSessions(ctx)
	if err != nil {
		s.logger.Error("session sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("session sweep completed", "deleted", deleted)
	}
}
