package service

import (
	"context"

	"github.com/vitraworks/vitra/internal/domain"
)

// CatalogService manages the pricing catalog. The catalog is a single
// document replaced wholesale on save; only authorized editors reach these
// methods (enforced by middleware, not here).
type CatalogService struct {
	store domain.CatalogStore
}

// NewCatalogService creates a CatalogService over the given store.
func NewCatalogService(store domain.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// Get returns the current catalog snapshot.
func (s *CatalogService) Get(ctx context.Context) (*domain.Catalog, error) {
	return s.store.Get(ctx)
}

// Replace validates and saves a whole new catalog object. Out-of-range
// billing percentages are clamped rather than rejected; a non-positive round
// step is the one hard error.
func (s *CatalogService) Replace(ctx context.Context, cat *domain.Catalog) error {
	if cat == nil {
		return domain.ErrCatalogInvalid
	}
	if cat.RoundStep < 1 {
		return domain.Errorf(domain.EINVALID, "catalog.replace", "round step must be a positive integer")
	}

	if cat.Billing.PriceFloorPercent < 1 {
		cat.Billing.PriceFloorPercent = 1
	}
	if cat.Billing.PriceFloorPercent > 100 {
		cat.Billing.PriceFloorPercent = 100
	}
	if cat.Billing.TaxRate < 0 {
		cat.Billing.TaxRate = 0
	}
	if cat.Billing.TaxRate > 100 {
		cat.Billing.TaxRate = 100
	}

	return s.store.Replace(ctx, cat)
}
