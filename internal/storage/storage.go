// Package storage persists uploaded pattern files.
package storage

import (
	"context"
	"io"
)

// Storage is the interface for pattern file storage.
// The only implementation today is the local filesystem; the interface
// exists so handlers and services never touch os paths directly.
type Storage interface {
	// Put stores a file and returns its URL/path for retrieval.
	// The key should be a unique identifier (e.g., "patterns/uuid/sketch.pdf").
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Get retrieves a file by its key.
	// Returns an io.ReadCloser that must be closed by the caller.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file by its key.
	// Returns nil if the file doesn't exist (idempotent).
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for accessing a stored file.
	URL(key string) string

	// Exists checks if a file exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

// Config selects and configures a storage backend.
type Config struct {
	Provider  string // "local" (default)
	LocalPath string // directory for stored files
	LocalURL  string // URL prefix files are served under (e.g., "/uploads")
}

// New creates a Storage implementation based on configuration.
func New(cfg Config) (Storage, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
