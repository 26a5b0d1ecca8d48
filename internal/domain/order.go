package domain

import (
	"context"
	"time"
)

// Order-related domain errors.
var (
	ErrOrderNotFound        = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrOrderEmpty           = &Error{Code: EINVALID, Message: "Order must contain at least one item"}
	ErrOrderNotArchived     = &Error{Code: ECONFLICT, Message: "Order must be archived before deletion"}
	ErrLineItemNotFound     = &Error{Code: ENOTFOUND, Message: "Line item not found"}
	ErrPaymentNotFound      = &Error{Code: ENOTFOUND, Message: "Payment not found"}
	ErrPaymentNotPositive   = &Error{Code: EINVALID, Message: "Payment amount must be greater than zero"}
	ErrCustomerNameRequired = &Error{Code: EINVALID, Message: "Customer name is required"}
)

// StructuralKind identifies the assembly shape of a line item.
type StructuralKind string

const (
	KindSingle   StructuralKind = "single"
	KindLaminate StructuralKind = "laminate"
	KindDouble   StructuralKind = "double"
	// KindManual is a free-text line priced by hand, outside the catalog.
	KindManual StructuralKind = "manual"
)

// GlassLayer is one sheet inside an assembly. IsSekurit must reflect the
// referenced glass row's process; toggling it re-resolves GlassID to the
// same-titled row with the other process when one exists.
type GlassLayer struct {
	GlassID   string `json:"glassId"`
	Thick     int    `json:"thick"` // millimeters
	IsSekurit bool   `json:"isSekurit"`
	HasEdge   bool   `json:"hasEdge"`
}

// Pane is a single or laminated glazing layer. Glass2 and InterlayerID are
// meaningful only when IsLaminated is set.
type Pane struct {
	IsLaminated  bool       `json:"isLaminated"`
	Glass1       GlassLayer `json:"glass1"`
	InterlayerID string     `json:"interlayerId,omitempty"`
	Glass2       GlassLayer `json:"glass2,omitempty"`
}

// TotalThickness is the summed glass thickness of the pane, feeding the
// interlayer auto-selection rules.
func (p Pane) TotalThickness() int {
	if !p.IsLaminated {
		return p.Glass1.Thick
	}
	return p.Glass1.Thick + p.Glass2.Thick
}

// AssemblyConfig is the structural configuration of a line item. Exactly one
// shape is populated, keyed by the line item's StructuralKind:
// single uses Single; laminate uses Laminate; double uses SpacerID/Pane1/Pane2.
type AssemblyConfig struct {
	Single   GlassLayer `json:"single,omitempty"`
	Laminate Pane       `json:"laminate,omitempty"`
	SpacerID string     `json:"spacerId,omitempty"`
	Pane1    Pane       `json:"pane1,omitempty"`
	Pane2    Pane       `json:"pane2,omitempty"`
}

// Dimensions is the requested size in centimeters and piece count.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Count  int     `json:"count"`
}

// PatternType classifies the optional cutting pattern on a line item.
type PatternType string

const (
	PatternNone   PatternType = "none"
	PatternUpload PatternType = "upload"
	PatternCarton PatternType = "carton"
)

// Attachment is an opaque stored-file record. The engine never inspects file
// bytes, only identity and declared type.
type Attachment struct {
	FilePath     string `json:"filePath"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
}

// Pattern is the cutting-pattern selection on a line item.
type Pattern struct {
	Type PatternType `json:"type"`
	File *Attachment `json:"file,omitempty"`
}

// DiscountType classifies an item- or invoice-level discount.
type DiscountType string

const (
	DiscountNone    DiscountType = "none"
	DiscountFixed   DiscountType = "fixed"
	DiscountPercent DiscountType = "percent"
)

// Discount is a discount setting. Percent values are clamped to [0,100];
// fixed values never exceed the total they apply to.
type Discount struct {
	Type  DiscountType `json:"type"`
	Value int64        `json:"value"`
}

// PricingMeta is the audit trail attached to a priced line item.
type PricingMeta struct {
	CatalogUnitPrice   int64        `json:"catalogUnitPrice"`
	CatalogLineTotal   int64        `json:"catalogLineTotal"`
	OverrideUnitPrice  int64        `json:"overrideUnitPrice"` // 0 = no override
	OverrideReason     string       `json:"overrideReason,omitempty"`
	FloorUnitPrice     int64        `json:"floorUnitPrice"`
	IsBelowFloor       bool         `json:"isBelowFloor"`
	ItemDiscountType   DiscountType `json:"itemDiscountType"`
	ItemDiscountValue  int64        `json:"itemDiscountValue"`
	ItemDiscountAmount int64        `json:"itemDiscountAmount"`
	FinalUnitPrice     int64        `json:"finalUnitPrice"`
	FinalLineTotal     int64        `json:"finalLineTotal"`
}

// OrderLineItem is one configured product on an order.
type OrderLineItem struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	StructuralKind StructuralKind `json:"structuralKind"`
	Dimensions     Dimensions     `json:"dimensions"`
	Config         AssemblyConfig `json:"config"`
	Operations     map[string]int `json:"operations,omitempty"` // operation id -> qty
	Pattern        Pattern        `json:"pattern"`
	// Taxable applies to manual items only; catalog items are always taxable.
	Taxable    bool         `json:"taxable"`
	UnitPrice  int64        `json:"unitPrice"`
	TotalPrice int64        `json:"totalPrice"`
	Meta       *PricingMeta `json:"pricingMeta,omitempty"`
}

// Payment is one entry in the order's payment ledger. The id is immutable;
// other fields are editable until the entry is deleted.
type Payment struct {
	ID        string      `json:"id"`
	Date      time.Time   `json:"date"`
	Amount    int64       `json:"amount"`
	Method    string      `json:"method"`
	Reference string      `json:"reference,omitempty"`
	Note      string      `json:"note,omitempty"`
	Receipt   *Attachment `json:"receipt,omitempty"`
}

// PaymentStatus summarizes the ledger against the grand total.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentUnpaid  PaymentStatus = "unpaid"
)

// InvoiceFinancials is the fully derived financial snapshot of an order.
// It is recomputed on every relevant mutation and never hand-edited.
type InvoiceFinancials struct {
	SubTotal              int64         `json:"subTotal"`
	ItemDiscountTotal     int64         `json:"itemDiscountTotal"`
	InvoiceDiscountType   DiscountType  `json:"invoiceDiscountType"`
	InvoiceDiscountValue  int64         `json:"invoiceDiscountValue"`
	InvoiceDiscountAmount int64         `json:"invoiceDiscountAmount"`
	TaxEnabled            bool          `json:"taxEnabled"`
	TaxRate               int64         `json:"taxRate"`
	TaxAmount             int64         `json:"taxAmount"`
	GrandTotal            int64         `json:"grandTotal"`
	PaidTotal             int64         `json:"paidTotal"`
	DueAmount             int64         `json:"dueAmount"`
	PaymentStatus         PaymentStatus `json:"paymentStatus"`
}

// OrderSource distinguishes orders placed by customers from staff-entered ones.
type OrderSource string

const (
	SourceCustomer OrderSource = "customer"
	SourceAdmin    OrderSource = "admin"
)

// OrderStatus is the order's workflow state.
type OrderStatus string

const (
	StatusOpen     OrderStatus = "open"
	StatusArchived OrderStatus = "archived"
)

// Order is a persisted customer order. Writes always carry the complete
// recomputed Financials; partial financial updates are not supported.
type Order struct {
	ID              string            `json:"id"`
	OrderCode       string            `json:"orderCode"`
	CustomerName    string            `json:"customerName"`
	Phone           string            `json:"phone,omitempty"`
	Date            time.Time         `json:"date"`
	Source          OrderSource       `json:"source"`
	Status          OrderStatus       `json:"status"`
	Items           []OrderLineItem   `json:"items"`
	Payments        []Payment         `json:"payments"`
	InvoiceDiscount Discount          `json:"invoiceDiscount"`
	TaxEnabled      bool              `json:"taxEnabled"`
	TaxRate         int64             `json:"taxRate"`
	Financials      InvoiceFinancials `json:"financials"`
	InvoiceNotes    string            `json:"invoiceNotes,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// ItemByID returns the line item with the given id, or nil.
func (o *Order) ItemByID(id string) *OrderLineItem {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return &o.Items[i]
		}
	}
	return nil
}

// PaymentByID returns the payment with the given id, or nil.
func (o *Order) PaymentByID(id string) *Payment {
	for i := range o.Payments {
		if o.Payments[i].ID == id {
			return &o.Payments[i]
		}
	}
	return nil
}

// HasPattern reports whether any item carries an upload or carton pattern.
// Feeds the order-code pattern flag.
func (o *Order) HasPattern() bool {
	for i := range o.Items {
		t := o.Items[i].Pattern.Type
		if t == PatternUpload || t == PatternCarton {
			return true
		}
	}
	return false
}

// OrderStore persists orders. Each write replaces the whole order row,
// including the recomputed financials snapshot.
type OrderStore interface {
	// Create persists a new order.
	Create(ctx context.Context, order *Order) error

	// Get returns an order by id.
	Get(ctx context.Context, id string) (*Order, error)

	// GetByCode returns an order by its order code.
	GetByCode(ctx context.Context, code string) (*Order, error)

	// List returns orders, newest first, excluding archived unless requested.
	List(ctx context.Context, includeArchived bool, limit, offset int32) ([]Order, error)

	// Update replaces a persisted order.
	Update(ctx context.Context, order *Order) error

	// Delete removes an order permanently.
	Delete(ctx context.Context, id string) error

	// NextDailySequence atomically increments and returns the 1-based order
	// sequence for the given civil date. Safe under concurrent order creation.
	NextDailySequence(ctx context.Context, day time.Time) (int, error)
}
