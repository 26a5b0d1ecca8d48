package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vitraworks/vitra/internal/domain"
	"github.com/vitraworks/vitra/internal/pricing"
)

// ItemInput is the user-supplied configuration for one order line.
type ItemInput struct {
	Title          string
	StructuralKind domain.StructuralKind
	Dimensions     domain.Dimensions
	Config         domain.AssemblyConfig
	Operations     map[string]int
	Pattern        domain.Pattern

	// ManualUnitPrice and Taxable apply to manual lines only.
	ManualUnitPrice int64
	Taxable         bool

	// OverrideUnitPrice replaces the computed catalog price when > 0.
	OverrideUnitPrice int64
	OverrideReason    string
	ItemDiscount      domain.Discount
}

// CreateOrderParams carries everything needed to open a new order.
type CreateOrderParams struct {
	CustomerName string
	Phone        string
	Source       domain.OrderSource
	Items        []ItemInput
	InvoiceNotes string
}

// PaymentInput is the editable part of a payment ledger entry.
type PaymentInput struct {
	Date      time.Time
	Amount    int64
	Method    string
	Reference string
	Note      string
	Receipt   *domain.Attachment
	// ClearReceipt removes an attached receipt on update.
	ClearReceipt bool
}

// OrderService owns the order lifecycle. Every mutation reprices affected
// items against a fresh catalog snapshot, recomputes the invoice financials,
// and persists the whole order.
type OrderService struct {
	orders  domain.OrderStore
	catalog domain.CatalogStore
	now     func() time.Time
}

// NewOrderService creates an OrderService over the given stores.
func NewOrderService(orders domain.OrderStore, catalog domain.CatalogStore) *OrderService {
	return &OrderService{
		orders:  orders,
		catalog: catalog,
		now:     time.Now,
	}
}

// Create opens a new order from a non-empty item list and customer info.
// The order code is derived from the civil date, the item pattern flags, and
// an atomic per-day sequence from the order store.
func (s *OrderService) Create(ctx context.Context, params CreateOrderParams) (*domain.Order, error) {
	if strings.TrimSpace(params.CustomerName) == "" {
		return nil, domain.ErrCustomerNameRequired
	}
	if len(params.Items) == 0 {
		return nil, domain.ErrOrderEmpty
	}

	cat, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &domain.Order{
		ID:           uuid.New().String(),
		CustomerName: strings.TrimSpace(params.CustomerName),
		Phone:        strings.TrimSpace(params.Phone),
		Date:         now,
		Source:       params.Source,
		Status:       domain.StatusOpen,
		TaxEnabled:   cat.Billing.TaxDefaultEnabled,
		TaxRate:      cat.Billing.TaxRate,
		InvoiceNotes: params.InvoiceNotes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if order.Source == "" {
		order.Source = domain.SourceAdmin
	}

	for _, input := range params.Items {
		order.Items = append(order.Items, buildItem(cat, input))
	}

	seq, err := s.orders.NextDailySequence(ctx, now)
	if err != nil {
		return nil, err
	}
	order.OrderCode = pricing.OrderCode(now, order.HasPattern(), order.Source, seq)

	s.recompute(order)
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get returns an order by id.
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.Get(ctx, id)
}

// GetByCode returns an order by its printed order code.
func (s *OrderService) GetByCode(ctx context.Context, code string) (*domain.Order, error) {
	return s.orders.GetByCode(ctx, code)
}

// List returns orders, newest first.
func (s *OrderService) List(ctx context.Context, includeArchived bool, limit, offset int32) ([]domain.Order, error) {
	return s.orders.List(ctx, includeArchived, limit, offset)
}

// AddItem appends a newly configured line to the order.
func (s *OrderService) AddItem(ctx context.Context, orderID string, input ItemInput) (*domain.Order, error) {
	return s.mutate(ctx, orderID, func(order *domain.Order, cat *domain.Catalog) error {
		order.Items = append(order.Items, buildItem(cat, input))
		return nil
	})
}

// UpdateItem replaces the configuration of an existing line and reprices it.
// The line keeps its id.
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID string, input ItemInput) (*domain.Order, error) {
	return s.mutate(ctx, orderID, func(order *domain.Order, cat *domain.Catalog) error {
		existing := order.ItemByID(itemID)
		if existing == nil {
			return domain.ErrLineItemNotFound
		}
		item := buildItem(cat, input)
		item.ID = existing.ID
		*existing = item
		return nil
	})
}

// RemoveItem deletes a line from the order.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID string) (*domain.Order, error) {
	return s.mutate(ctx, orderID, func(order *domain.Order, cat *domain.Catalog) error {
		for i := range order.Items {
			if order.Items[i].ID == itemID {
				order.Items = append(order.Items[:i], order.Items[i+1:]...)
				return nil
			}
		}
		return domain.ErrLineItemNotFound
	})
}

// RecordPayment appends a ledger entry. A non-positive amount is the one
// hard precondition rejected before mutation.
func (s *OrderService) RecordPayment(ctx context.Context, orderID string, input PaymentInput) (*domain.Order, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrPaymentNotPositive
	}
	return s.mutate(ctx, orderID, func(order *domain.Order, cat *domain.Catalog) error {
		if err := validatePaymentMethod(cat, input.Method); err != nil {
			return err
		}
		date := input.Date
		if date.IsZero() {
			date = s.now()
		}
		order.Payments = append(order.Payments, domain.Payment{
			ID:        uuid.New().String(),
			Date:      date,
			Amount:    input.Amount,
			Method:    input.Method,
			Reference: input.Reference,
			Note:      input.Note,
			Receipt:   input.Receipt,
		})
		return nil
	})
}

// UpdatePayment edits an existing ledger entry in place. The id is immutable.
func (s *OrderService) UpdatePayment(ctx context.Context, orderID, paymentID string, input PaymentInput) (*domain.Order, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrPaymentNotPositive
	}
	return s.mutate(ctx, orderID, func(order *domain.Order, cat *domain.Catalog) error {
		if err := validatePaymentMethod(cat, input.Method); err != nil {
			return err
		}
		payment := order.PaymentByID(paymentID)
		if payment == nil {
			return domain.ErrPaymentNotFound
		}
		if !input.Date.IsZero() {
			payment.Date = input.Date
		}
		payment.Amount = input.Amount
		payment.Method = input.Method
		payment.Reference = input.Reference
		payment.Note = input.Note
		switch {
		case input.ClearReceipt:
			payment.Receipt = nil
		case input.Receipt != nil:
			payment.Receipt = input.Receipt
		}
		return nil
	})
}

// DeletePayment removes a ledger entry.
func (s *OrderService) DeletePayment(ctx context.Context, orderID, paymentID string) (*domain.Order, error) {
	return s.mutate(ctx, orderID, func(order *domain.Order, cat *domain.Catalog) error {
		for i := range order.Payments {
			if order.Payments[i].ID == paymentID {
				order.Payments = append(order.Payments[:i], order.Payments[i+1:]...)
				return nil
			}
		}
		return domain.ErrPaymentNotFound
	})
}

// SetInvoiceDiscount replaces the invoice-level discount setting.
func (s *OrderService) SetInvoiceDiscount(ctx context.Context, orderID string, discount domain.Discount) (*domain.Order, error) {
	return s.mutate(ctx, orderID, func(order *domain.Order, cat *domain.Catalog) error {
		order.InvoiceDiscount = discount
		return nil
	})
}

// SetTax replaces the order's tax policy. Out-of-range rates are clamped.
func (s *OrderService) SetTax(ctx context.Context, orderID string, enabled bool, rate int64) (*domain.Order, error) {
	return s.mutate(ctx, orderID, func(order *domain.Order, cat *domain.Catalog) error {
		order.TaxEnabled = enabled
		order.TaxRate = pricing.ClampPercent(rate)
		return nil
	})
}

// SetInvoiceNotes replaces the free-text notes printed on the invoice.
func (s *OrderService) SetInvoiceNotes(ctx context.Context, orderID, notes string) (*domain.Order, error) {
	return s.mutate(ctx, orderID, func(order *domain.Order, cat *domain.Catalog) error {
		order.InvoiceNotes = notes
		return nil
	})
}

// Archive soft-deletes an order.
func (s *OrderService) Archive(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.mutate(ctx, orderID, func(order *domain.Order, cat *domain.Catalog) error {
		order.Status = domain.StatusArchived
		return nil
	})
}

// Delete permanently removes an order. Only archived orders may be deleted.
func (s *OrderService) Delete(ctx context.Context, orderID string) error {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.StatusArchived {
		return domain.ErrOrderNotArchived
	}
	return s.orders.Delete(ctx, orderID)
}

// mutate loads the order and a fresh catalog snapshot, applies fn, recomputes
// the financials, and persists the whole order.
func (s *OrderService) mutate(ctx context.Context, orderID string, fn func(*domain.Order, *domain.Catalog) error) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	cat, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := fn(order, cat); err != nil {
		return nil, err
	}

	s.recompute(order)
	order.UpdatedAt = s.now()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// recompute rebuilds the derived financial snapshot from the current items,
// discount, tax settings, and payment ledger.
func (s *OrderService) recompute(order *domain.Order) {
	order.Financials = pricing.ComputeFinancials(
		order.Items,
		order.InvoiceDiscount,
		pricing.TaxPolicy{Enabled: order.TaxEnabled, Rate: order.TaxRate},
		order.Payments,
	)
}

// validatePaymentMethod enforces the catalog's allowed-methods billing
// policy. An empty catalog list accepts any method.
func validatePaymentMethod(cat *domain.Catalog, method string) error {
	if len(cat.Billing.PaymentMethods) == 0 {
		return nil
	}
	for _, m := range cat.Billing.PaymentMethods {
		if m == method {
			return nil
		}
	}
	return domain.Errorf(domain.EINVALID, "order.payment", "Payment method %q is not accepted", method)
}

// buildItem prices one line against the catalog snapshot and attaches the
// audit meta. Envelope violations leave the line at price zero; the caller
// may still save the draft.
func buildItem(cat *domain.Catalog, input ItemInput) domain.OrderLineItem {
	item := domain.OrderLineItem{
		ID:             uuid.New().String(),
		Title:          input.Title,
		StructuralKind: input.StructuralKind,
		Dimensions:     input.Dimensions,
		Config:         input.Config,
		Operations:     input.Operations,
		Pattern:        input.Pattern,
		Taxable:        input.Taxable,
	}
	item.Dimensions.Count = pricing.NormalizeCount(item.Dimensions.Count)
	if item.Pattern.Type == "" {
		item.Pattern.Type = domain.PatternNone
	}
	if item.StructuralKind == domain.KindLaminate {
		// Persist the flag so thickness and interlayer logic see a laminated pane.
		item.Config.Laminate.IsLaminated = true
	}

	if input.StructuralKind == domain.KindManual {
		meta := pricing.BuildManualMeta(input.ManualUnitPrice, item.Dimensions.Count, input.ItemDiscount)
		item.Meta = &meta
		item.UnitPrice = meta.FinalUnitPrice
		item.TotalPrice = meta.FinalLineTotal
		return item
	}

	quote := pricing.New(cat).Price(input.StructuralKind, item.Dimensions, input.Config, input.Operations, input.Pattern)
	meta := pricing.BuildCatalogMeta(pricing.CatalogMetaParams{
		CatalogUnitPrice:  quote.UnitPrice,
		Count:             item.Dimensions.Count,
		FloorPercent:      cat.Billing.PriceFloorPercent,
		OverrideUnitPrice: input.OverrideUnitPrice,
		OverrideReason:    input.OverrideReason,
		ItemDiscount:      input.ItemDiscount,
	})
	item.Meta = &meta
	item.UnitPrice = meta.FinalUnitPrice
	item.TotalPrice = meta.FinalLineTotal
	return item
}
