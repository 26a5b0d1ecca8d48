// Package postgres implements the domain store interfaces on PostgreSQL
// via pgx. Orders and the catalog are stored as JSONB documents; the
// structure is versioned by the application, not the schema.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vitraworks/vitra/internal/domain"
)

// CatalogStore implements domain.CatalogStore using PostgreSQL.
// The whole price list lives in one JSONB row and is replaced wholesale
// on every save, matching how the catalog is edited in practice.
type CatalogStore struct {
	pool *pgxpool.Pool
}

var _ domain.CatalogStore = (*CatalogStore)(nil)

// NewCatalogStore creates a new CatalogStore instance.
func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

// Get returns the current catalog document.
func (s *CatalogStore) Get(ctx context.Context) (*domain.Catalog, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM catalog WHERE id = 1`,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &catalog, nil
}

// Replace atomically swaps the stored catalog for the given one.
func (s *CatalogStore) Replace(ctx context.Context, catalog *domain.Catalog) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO catalog (id, data, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}
