package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vitraworks/vitra/internal/domain"
)

// EnsureCatalog seeds the pricing catalog with a starter configuration when
// none exists yet. Idempotent - an existing catalog is never touched.
func EnsureCatalog(ctx context.Context, store domain.CatalogStore, logger *slog.Logger) error {
	if _, err := store.Get(ctx); err == nil {
		return nil
	} else if !domain.IsCode(err, domain.ENOTFOUND) {
		return fmt.Errorf("failed to check for existing catalog: %w", err)
	}

	if err := store.Replace(ctx, DefaultCatalog()); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	logger.Info("bootstrap: seeded default pricing catalog")
	return nil
}

// DefaultCatalog returns the starter catalog installed on first run. Prices
// are placeholders in minor currency units; admins replace them through the
// catalog endpoint.
func DefaultCatalog() *domain.Catalog {
	return &domain.Catalog{
		RoundStep:     10,
		FactoryLimits: domain.FactoryLimits{MaxWidth: 321, MaxHeight: 600},
		Thicknesses:   []int{3, 4, 5, 6, 8, 10, 12},
		Glasses: []domain.Glass{
			{
				ID:      "glass-clear-raw",
				Title:   "Clear float",
				Process: domain.ProcessRaw,
				Prices:  map[int]int64{3: 9000, 4: 11000, 5: 13000, 6: 16000, 8: 22000, 10: 30000, 12: 40000},
			},
			{
				ID:      "glass-clear-sekurit",
				Title:   "Clear float",
				Process: domain.ProcessSekurit,
				Prices:  map[int]int64{4: 21000, 5: 24000, 6: 28000, 8: 38000, 10: 50000, 12: 66000},
			},
			{
				ID:      "glass-bronze-raw",
				Title:   "Bronze tinted",
				Process: domain.ProcessRaw,
				Prices:  map[int]int64{4: 15000, 5: 17000, 6: 20000},
			},
		},
		Connectors: domain.Connectors{
			Spacers: []domain.Connector{
				{ID: "spacer-alu-12", Title: "Aluminium spacer 12mm", Price: 2500, Unit: domain.UnitLength},
				{ID: "spacer-warm-16", Title: "Warm edge spacer 16mm", Price: 4000, Unit: domain.UnitLength},
			},
			Interlayers: []domain.Connector{
				{ID: "pvb-038", Title: "PVB 0.38", Price: 6000, Unit: domain.UnitArea},
				{ID: "pvb-076", Title: "PVB 0.76", Price: 9000, Unit: domain.UnitArea},
				{ID: "pvb-152", Title: "PVB 1.52", Price: 15000, Unit: domain.UnitArea},
			},
		},
		Operations: []domain.Operation{
			{ID: "op-hole", Title: "Drilled hole", Price: 1500, Unit: domain.UnitQty, IsActive: true, SortOrder: 1},
			{ID: "op-cutout", Title: "Cutout", Price: 6000, Unit: domain.UnitQty, IsActive: true, SortOrder: 2},
			{ID: "op-polish", Title: "Polished edge", Price: 1200, Unit: domain.UnitLength, IsActive: true, SortOrder: 3},
			{ID: "op-sandblast", Title: "Sandblasting", Price: 8000, Unit: domain.UnitArea, IsActive: true, SortOrder: 4},
		},
		Fees: domain.Fees{
			DoubleGlazing: domain.Fee{Price: 7000, Unit: domain.UnitArea, FixedOrderPrice: 5000},
			Laminating:    domain.Fee{Price: 9000, Unit: domain.UnitArea, FixedOrderPrice: 5000},
			EdgeWork:      domain.Fee{Price: 800, Unit: domain.UnitLength},
			Pattern:       domain.Fee{Price: 10000, Unit: domain.UnitPerOrder},
		},
		PVBLogic: []domain.InterlayerRule{
			{MinTotalThickness: 0, MaxTotalThickness: 9, DefaultInterlayerID: "pvb-038"},
			{MinTotalThickness: 10, MaxTotalThickness: 15, DefaultInterlayerID: "pvb-076"},
			{MinTotalThickness: 16, MaxTotalThickness: 100, DefaultInterlayerID: "pvb-152"},
		},
		JumboRules: []domain.JumboRule{
			{MinDim: 321, MaxDim: 450, Type: domain.JumboPercentage, Value: 15},
			{MinDim: 451, MaxDim: 0, Type: domain.JumboPercentage, Value: 30},
		},
		Billing: domain.Billing{
			PriceFloorPercent: 50,
			TaxDefaultEnabled: true,
			TaxRate:           20,
			PaymentMethods:    []string{"cash", "card", "transfer"},
		},
	}
}
