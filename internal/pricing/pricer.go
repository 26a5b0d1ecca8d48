package pricing

import (
	"math"

	"github.com/vitraworks/vitra/internal/domain"
)

// sekuritMultiplier is the tempered-process premium over the raw rate.
const sekuritMultiplier = 1.5

// Quote is the priced result for one line item configuration, including the
// breakdown an order-authoring surface renders next to the price.
type Quote struct {
	// Violations is non-empty when the configuration cannot be priced;
	// UnitPrice and LineTotal are forced to 0 in that case. The caller may
	// still save a draft but must not treat the price as valid.
	Violations []string

	Area      float64 // billable m² per piece
	Perimeter float64 // m per piece
	Count     int

	AssemblyCost   float64 // glass + connectors + assembly fees, per piece
	OperationsCost float64 // ancillary services, per piece
	PatternFee     float64 // per piece (order-unit fees spread across count)
	Surcharge      float64 // oversize surcharge, per piece

	UnitPrice int64 // rounded up to the catalog round step
	LineTotal int64 // UnitPrice * Count
}

// Pricer prices assemblies against an immutable catalog snapshot.
type Pricer struct {
	cat *domain.Catalog
}

// New creates a Pricer over the given catalog snapshot.
func New(cat *domain.Catalog) *Pricer {
	return &Pricer{cat: cat}
}

// Price computes the unit and line price for one structural configuration.
// Missing catalog references contribute 0 and never fail; only a factory
// envelope violation blocks pricing.
func (p *Pricer) Price(
	kind domain.StructuralKind,
	dims domain.Dimensions,
	cfg domain.AssemblyConfig,
	operations map[string]int,
	pattern domain.Pattern,
) Quote {
	q := Quote{
		Area:      EffectiveArea(dims.Width, dims.Height),
		Perimeter: Perimeter(dims.Width, dims.Height),
		Count:     NormalizeCount(dims.Count),
	}

	q.Violations = ValidateDimensions(dims.Width, dims.Height, p.cat.FactoryLimits)
	if len(q.Violations) > 0 {
		return q
	}

	switch kind {
	case domain.KindSingle:
		q.AssemblyCost = p.paneCost(domain.Pane{Glass1: cfg.Single}, q.Area, q.Perimeter)
	case domain.KindLaminate:
		// The structural kind asserts lamination; clients may omit the flag.
		pane := cfg.Laminate
		pane.IsLaminated = true
		q.AssemblyCost = p.paneCost(pane, q.Area, q.Perimeter)
	case domain.KindDouble:
		q.AssemblyCost = p.paneCost(cfg.Pane1, q.Area, q.Perimeter) +
			p.paneCost(cfg.Pane2, q.Area, q.Perimeter) +
			p.spacerCost(cfg.SpacerID, q.Area, q.Perimeter) +
			p.feeCost(p.cat.Fees.DoubleGlazing, q.Area) +
			float64(p.cat.Fees.DoubleGlazing.FixedOrderPrice)
	}

	q.OperationsCost = p.operationsCost(operations, q.Area, q.Perimeter)
	q.PatternFee = p.patternFee(pattern, q.Count)

	running := q.AssemblyCost + q.OperationsCost + q.PatternFee
	rule := ResolveJumboRule(math.Max(dims.Width, dims.Height), p.cat.JumboRules)
	q.Surcharge = ApplyJumboSurcharge(running, rule)

	q.UnitPrice = roundUpToStep(running+q.Surcharge, p.cat.RoundStep)
	q.LineTotal = q.UnitPrice * int64(q.Count)
	return q
}

// glassCost prices one glass layer: the catalog area rate for the layer's
// thickness (0 when the glass or thickness is missing), the tempered
// multiplier, and edge work when requested.
func (p *Pricer) glassCost(layer domain.GlassLayer, area, perimeter float64) float64 {
	var rate int64
	if g := p.cat.GlassByID(layer.GlassID); g != nil {
		rate = g.Prices[layer.Thick]
	}

	mult := 1.0
	if layer.IsSekurit {
		mult = sekuritMultiplier
	}

	cost := float64(rate) * mult * area
	if layer.HasEdge {
		if p.cat.Fees.EdgeWork.Unit == domain.UnitLength {
			cost += float64(p.cat.Fees.EdgeWork.Price) * perimeter
		} else {
			cost += float64(p.cat.Fees.EdgeWork.Price) * area
		}
	}
	return cost
}

// paneCost prices a single or laminated pane. A laminated pane adds the
// interlayer, the lamination assembly fee, and the lamination fixed price
// once per pane.
func (p *Pricer) paneCost(pane domain.Pane, area, perimeter float64) float64 {
	cost := p.glassCost(pane.Glass1, area, perimeter)
	if !pane.IsLaminated {
		return cost
	}

	cost += p.glassCost(pane.Glass2, area, perimeter)

	if il := p.cat.InterlayerByID(pane.InterlayerID); il != nil {
		if il.Unit == domain.UnitArea {
			cost += float64(il.Price) * area
		} else {
			cost += float64(il.Price)
		}
	}

	cost += p.feeCost(p.cat.Fees.Laminating, area)
	cost += float64(p.cat.Fees.Laminating.FixedOrderPrice)
	return cost
}

// spacerCost prices the perimeter profile of a double-glazed unit.
func (p *Pricer) spacerCost(spacerID string, area, perimeter float64) float64 {
	sp := p.cat.SpacerByID(spacerID)
	if sp == nil {
		return 0
	}
	if sp.Unit == domain.UnitLength {
		return float64(sp.Price) * perimeter
	}
	return float64(sp.Price) * area
}

// feeCost scales an assembly fee by area when area-priced, otherwise charges
// the flat rate. The fee's fixed order price is the caller's concern.
func (p *Pricer) feeCost(fee domain.Fee, area float64) float64 {
	if fee.Unit == domain.UnitArea {
		return float64(fee.Price) * area
	}
	return float64(fee.Price)
}

// operationsCost prices the selected ancillary services. Quantity-priced
// operations scale with the requested qty; length- and area-priced ones
// follow the piece geometry. Unknown ids contribute 0.
func (p *Pricer) operationsCost(operations map[string]int, area, perimeter float64) float64 {
	var cost float64
	for id, qty := range operations {
		op := p.cat.OperationByID(id)
		if op == nil || qty <= 0 {
			continue
		}
		switch op.Unit {
		case domain.UnitQty:
			cost += float64(op.Price) * float64(qty)
		case domain.UnitLength:
			cost += float64(op.Price) * perimeter
		case domain.UnitArea:
			cost += float64(op.Price) * area
		}
	}
	return cost
}

// patternFee prices an attached cutting pattern. A qty-unit fee is charged
// per piece; an order-unit fee is charged once per line, spread across the
// count so LineTotal still equals UnitPrice * Count.
func (p *Pricer) patternFee(pattern domain.Pattern, count int) float64 {
	if pattern.Type == domain.PatternNone || pattern.Type == "" {
		return 0
	}
	fee := p.cat.Fees.Pattern
	if fee.Unit == domain.UnitQty {
		return float64(fee.Price)
	}
	return float64(fee.Price) / float64(count)
}

// SuggestInterlayer re-resolves a laminated pane's interlayer after a glass
// thickness change, per the catalog thickness rules. Panes that are not
// laminated are left untouched.
func SuggestInterlayer(cat *domain.Catalog, pane *domain.Pane) {
	if pane == nil || !pane.IsLaminated {
		return
	}
	if id := cat.InterlayerForThickness(pane.TotalThickness()); id != "" {
		pane.InterlayerID = id
	}
}

// SetSekurit toggles the tempered flag on a glass layer and re-resolves the
// glass id to the same-titled catalog row with the target process. When the
// family has no member with that process the stale id is kept; the authoring
// surface flags it for correction.
func SetSekurit(cat *domain.Catalog, layer *domain.GlassLayer, sekurit bool) {
	if layer == nil {
		return
	}
	layer.IsSekurit = sekurit

	current := cat.GlassByID(layer.GlassID)
	if current == nil {
		return
	}

	target := domain.ProcessRaw
	if sekurit {
		target = domain.ProcessSekurit
	}
	if current.Process == target {
		return
	}
	if variant := cat.GlassVariant(current.Title, target); variant != nil {
		layer.GlassID = variant.ID
	}
}
