package domain

import "context"

// Catalog-related domain errors.
var (
	ErrCatalogNotFound = &Error{Code: ENOTFOUND, Message: "Pricing catalog not found"}
	ErrCatalogInvalid  = &Error{Code: EINVALID, Message: "Pricing catalog is invalid"}
)

// GlassProcess identifies the fabrication process of a glass row.
type GlassProcess string

const (
	ProcessRaw     GlassProcess = "raw"
	ProcessSekurit GlassProcess = "sekurit"
)

// PriceUnit identifies how a catalog price scales.
type PriceUnit string

const (
	UnitQty      PriceUnit = "qty"      // per piece
	UnitLength   PriceUnit = "m_length" // per running meter
	UnitArea     PriceUnit = "m_square" // per square meter
	UnitPerOrder PriceUnit = "order"    // once per line item
)

// Glass is one priced glass row. Rows sharing a Title with different Process
// values form a family: toggling the tempered flag on a layer switches between
// family members.
type Glass struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Process GlassProcess  `json:"process"`
	Prices  map[int]int64 `json:"prices"` // thickness mm -> unit-area price
}

// Connector is a spacer or interlayer row.
type Connector struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Price int64     `json:"price"`
	Unit  PriceUnit `json:"unit"` // m_length or m_square
}

// Connectors groups the two connector tables.
type Connectors struct {
	Spacers     []Connector `json:"spacers"`
	Interlayers []Connector `json:"interlayers"`
}

// Operation is an ancillary service (drilling, cutouts, ...).
type Operation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Price     int64     `json:"price"`
	Unit      PriceUnit `json:"unit"` // qty, m_length or m_square
	IsActive  bool      `json:"isActive"`
	SortOrder int       `json:"sortOrder"`
}

// Fee is a priced assembly or finishing step.
type Fee struct {
	Price int64     `json:"price"`
	Unit  PriceUnit `json:"unit"`
	// FixedOrderPrice is added once per assembled pane/unit regardless of size.
	FixedOrderPrice int64 `json:"fixedOrderPrice,omitempty"`
}

// Fees is the catalog fee schedule.
type Fees struct {
	DoubleGlazing Fee `json:"doubleGlazing"`
	Laminating    Fee `json:"laminating"`
	EdgeWork      Fee `json:"edgeWork"`
	Pattern       Fee `json:"pattern"` // unit: order or qty
}

// InterlayerRule maps a laminated total-thickness range to a default interlayer.
// Ranges are inclusive; the first matching rule in declaration order wins.
type InterlayerRule struct {
	MinTotalThickness   int    `json:"minTotalThickness"`
	MaxTotalThickness   int    `json:"maxTotalThickness"`
	DefaultInterlayerID string `json:"defaultInterlayerId"`
}

// JumboRuleType distinguishes percentage and flat oversize surcharges.
type JumboRuleType string

const (
	JumboPercentage JumboRuleType = "percentage"
	JumboFixed      JumboRuleType = "fixed"
)

// JumboRule is an oversize surcharge keyed by the larger of width/height.
// MaxDim == 0 means unbounded.
type JumboRule struct {
	MinDim int           `json:"minDim"`
	MaxDim int           `json:"maxDim"`
	Type   JumboRuleType `json:"type"`
	Value  int64         `json:"value"`
}

// FactoryLimits is the fabrication envelope in centimeters. A requested size
// fits if it fits in either axis orientation.
type FactoryLimits struct {
	MaxWidth  int `json:"maxWidth"`
	MaxHeight int `json:"maxHeight"`
}

// Billing holds invoice-level policy.
type Billing struct {
	PriceFloorPercent int64    `json:"priceFloorPercent"` // clamped to [1,100]
	TaxDefaultEnabled bool     `json:"taxDefaultEnabled"`
	TaxRate           int64    `json:"taxRate"` // percent, [0,100]
	PaymentMethods    []string `json:"paymentMethods"`
}

// Catalog is the whole mutable pricing configuration. It is versionless:
// each save replaces the entire object, and every pricing computation takes
// an immutable snapshot of it.
type Catalog struct {
	RoundStep     int64            `json:"roundStep"`
	FactoryLimits FactoryLimits    `json:"factoryLimits"`
	Thicknesses   []int            `json:"thicknesses"`
	Glasses       []Glass          `json:"glasses"`
	Connectors    Connectors       `json:"connectors"`
	Operations    []Operation      `json:"operations"`
	Fees          Fees             `json:"fees"`
	PVBLogic      []InterlayerRule `json:"pvbLogic"`
	JumboRules    []JumboRule      `json:"jumboRules"`
	Billing       Billing          `json:"billing"`
}

// GlassByID returns the glass row with the given id, or nil.
func (c *Catalog) GlassByID(id string) *Glass {
	for i := range c.Glasses {
		if c.Glasses[i].ID == id {
			return &c.Glasses[i]
		}
	}
	return nil
}

// GlassVariant finds a glass row sharing the given title with the target
// process. Used for automatic process matching when the tempered flag is
// toggled on a layer. Returns nil when the family has no such member.
func (c *Catalog) GlassVariant(title string, process GlassProcess) *Glass {
	for i := range c.Glasses {
		if c.Glasses[i].Title == title && c.Glasses[i].Process == process {
			return &c.Glasses[i]
		}
	}
	return nil
}

// SpacerByID returns the spacer with the given id, or nil.
func (c *Catalog) SpacerByID(id string) *Connector {
	for i := range c.Connectors.Spacers {
		if c.Connectors.Spacers[i].ID == id {
			return &c.Connectors.Spacers[i]
		}
	}
	return nil
}

// InterlayerByID returns the interlayer with the given id, or nil.
func (c *Catalog) InterlayerByID(id string) *Connector {
	for i := range c.Connectors.Interlayers {
		if c.Connectors.Interlayers[i].ID == id {
			return &c.Connectors.Interlayers[i]
		}
	}
	return nil
}

// OperationByID returns the operation with the given id, or nil.
func (c *Catalog) OperationByID(id string) *Operation {
	for i := range c.Operations {
		if c.Operations[i].ID == id {
			return &c.Operations[i]
		}
	}
	return nil
}

// InterlayerForThickness resolves the default interlayer for a laminated
// pane's total glass thickness. The first rule whose inclusive range contains
// the value wins; when none match, the first catalog interlayer is the
// fallback. Returns "" only when the catalog has no interlayers at all.
func (c *Catalog) InterlayerForThickness(totalThickness int) string {
	for _, rule := range c.PVBLogic {
		if totalThickness >= rule.MinTotalThickness && totalThickness <= rule.MaxTotalThickness {
			return rule.DefaultInterlayerID
		}
	}
	if len(c.Connectors.Interlayers) > 0 {
		return c.Connectors.Interlayers[0].ID
	}
	return ""
}

// CatalogStore persists the catalog as a single document, replaced wholesale
// on save. Versioning and concurrent-edit resolution live here, not in the
// pricing core.
type CatalogStore interface {
	// Get returns the current catalog snapshot.
	Get(ctx context.Context) (*Catalog, error)

	// Replace overwrites the whole catalog object.
	Replace(ctx context.Context, catalog *Catalog) error
}
