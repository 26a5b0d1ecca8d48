package pricing

import "github.com/vitraworks/vitra/internal/domain"

// ClampPercent coerces a percentage to [0,100]. Negative or out-of-range
// discount and tax input is clamped rather than rejected.
func ClampPercent(v int64) int64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// clampFloorPercent keeps the price floor inside [1,100] percent of the
// catalog price.
func clampFloorPercent(v int64) int64 {
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}

// DiscountAmount computes the discount against a line or invoice total.
// Never negative and never more than the total it applies to.
func DiscountAmount(d domain.Discount, total int64) int64 {
	if total < 0 {
		total = 0
	}
	var amount int64
	switch d.Type {
	case domain.DiscountFixed:
		amount = d.Value
	case domain.DiscountPercent:
		amount = roundInt(float64(total) * float64(ClampPercent(d.Value)) / 100)
	default:
		return 0
	}
	if amount < 0 {
		return 0
	}
	if amount > total {
		return total
	}
	return amount
}

// CatalogMetaParams are the inputs for auditing a catalog-priced line item.
type CatalogMetaParams struct {
	CatalogUnitPrice int64
	Count            int
	FloorPercent     int64
	// OverrideUnitPrice replaces the catalog unit price when > 0.
	OverrideUnitPrice int64
	OverrideReason    string
	ItemDiscount      domain.Discount
}

// BuildCatalogMeta wraps a computed catalog price, an optional manual
// override, and an optional item discount into the audit structure persisted
// on the line item.
func BuildCatalogMeta(p CatalogMetaParams) domain.PricingMeta {
	count := NormalizeCount(p.Count)
	floorPct := clampFloorPercent(p.FloorPercent)

	meta := domain.PricingMeta{
		CatalogUnitPrice:  p.CatalogUnitPrice,
		CatalogLineTotal:  p.CatalogUnitPrice * int64(count),
		OverrideUnitPrice: p.OverrideUnitPrice,
		OverrideReason:    p.OverrideReason,
		FloorUnitPrice:    roundInt(float64(p.CatalogUnitPrice) * float64(floorPct) / 100),
		ItemDiscountType:  p.ItemDiscount.Type,
		ItemDiscountValue: p.ItemDiscount.Value,
	}
	if meta.ItemDiscountType == "" {
		meta.ItemDiscountType = domain.DiscountNone
	}

	effectiveUnit := p.CatalogUnitPrice
	if p.OverrideUnitPrice > 0 {
		effectiveUnit = p.OverrideUnitPrice
		meta.IsBelowFloor = p.OverrideUnitPrice < meta.FloorUnitPrice
	}

	lineTotal := effectiveUnit * int64(count)
	meta.ItemDiscountAmount = DiscountAmount(p.ItemDiscount, lineTotal)

	meta.FinalLineTotal = lineTotal - meta.ItemDiscountAmount
	if meta.FinalLineTotal < 0 {
		meta.FinalLineTotal = 0
	}
	meta.FinalUnitPrice = roundInt(float64(meta.FinalLineTotal) / float64(count))
	return meta
}

// BuildManualMeta audits a free-text manual line. Manual lines have no floor
// concept: the floor equals the entered unit price and the below-floor flag
// is never set.
func BuildManualMeta(unitPrice int64, qty int, discount domain.Discount) domain.PricingMeta {
	count := NormalizeCount(qty)

	meta := domain.PricingMeta{
		CatalogUnitPrice:  unitPrice,
		CatalogLineTotal:  unitPrice * int64(count),
		FloorUnitPrice:    unitPrice,
		ItemDiscountType:  discount.Type,
		ItemDiscountValue: discount.Value,
	}
	if meta.ItemDiscountType == "" {
		meta.ItemDiscountType = domain.DiscountNone
	}

	lineTotal := unitPrice * int64(count)
	meta.ItemDiscountAmount = DiscountAmount(discount, lineTotal)

	meta.FinalLineTotal = lineTotal - meta.ItemDiscountAmount
	if meta.FinalLineTotal < 0 {
		meta.FinalLineTotal = 0
	}
	meta.FinalUnitPrice = roundInt(float64(meta.FinalLineTotal) / float64(count))
	return meta
}
