package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitraworks/vitra/internal/domain"
)

// mockOrderStore implements domain.OrderStore for testing.
type mockOrderStore struct {
	CreateFunc            func(ctx context.Context, order *domain.Order) error
	GetFunc               func(ctx context.Context, id string) (*domain.Order, error)
	GetByCodeFunc         func(ctx context.Context, code string) (*domain.Order, error)
	ListFunc              func(ctx context.Context, includeArchived bool, limit, offset int32) ([]domain.Order, error)
	UpdateFunc            func(ctx context.Context, order *domain.Order) error
	DeleteFunc            func(ctx context.Context, id string) error
	NextDailySequenceFunc func(ctx context.Context, day time.Time) (int, error)
}

func (m *mockOrderStore) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

func (m *mockOrderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *mockOrderStore) GetByCode(ctx context.Context, code string) (*domain.Order, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *mockOrderStore) List(ctx context.Context, includeArchived bool, limit, offset int32) ([]domain.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, includeArchived, limit, offset)
	}
	return nil, nil
}

func (m *mockOrderStore) Update(ctx context.Context, order *domain.Order) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, order)
	}
	return nil
}

func (m *mockOrderStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockOrderStore) NextDailySequence(ctx context.Context, day time.Time) (int, error) {
	if m.NextDailySequenceFunc != nil {
		return m.NextDailySequenceFunc(ctx, day)
	}
	return 1, nil
}

// mockCatalogStore implements domain.CatalogStore for testing.
type mockCatalogStore struct {
	GetFunc     func(ctx context.Context) (*domain.Catalog, error)
	ReplaceFunc func(ctx context.Context, catalog *domain.Catalog) error
}

func (m *mockCatalogStore) Get(ctx context.Context) (*domain.Catalog, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return serviceTestCatalog(), nil
}

func (m *mockCatalogStore) Replace(ctx context.Context, catalog *domain.Catalog) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, catalog)
	}
	return nil
}

func serviceTestCatalog() *domain.Catalog {
	return &domain.Catalog{
		RoundStep:     1000,
		FactoryLimits: domain.FactoryLimits{MaxWidth: 321, MaxHeight: 600},
		Thicknesses:   []int{4, 6},
		Glasses: []domain.Glass{
			{ID: "g1", Title: "Clear Float", Process: domain.ProcessRaw, Prices: map[int]int64{6: 120000}},
		},
		Connectors: domain.Connectors{
			Interlayers: []domain.Connector{
				{ID: "il1", Title: "PVB 0.76", Price: 90000, Unit: domain.UnitArea},
			},
		},
		Fees: domain.Fees{
			Laminating: domain.Fee{Price: 120000, Unit: domain.UnitArea, FixedOrderPrice: 30000},
		},
		Billing: domain.Billing{
			PriceFloorPercent: 70,
			TaxDefaultEnabled: true,
			TaxRate:           9,
			PaymentMethods:    []string{"cash"},
		},
	}
}

func singleItemInput() ItemInput {
	return ItemInput{
		Title:          "Shop window",
		StructuralKind: domain.KindSingle,
		Dimensions:     domain.Dimensions{Width: 100, Height: 100, Count: 1},
		Config:         domain.AssemblyConfig{Single: domain.GlassLayer{GlassID: "g1", Thick: 6}},
	}
}

func fixedTime() time.Time {
	return time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
}

func Test_OrderService_Create(t *testing.T) {
	var persisted *domain.Order
	orders := &mockOrderStore{
		CreateFunc: func(ctx context.Context, order *domain.Order) error {
			persisted = order
			return nil
		},
		NextDailySequenceFunc: func(ctx context.Context, day time.Time) (int, error) {
			return 7, nil
		},
	}
	svc := NewOrderService(orders, &mockCatalogStore{})
	svc.now = fixedTime

	order, err := svc.Create(context.Background(), CreateOrderParams{
		CustomerName: "A. Customer",
		Source:       domain.SourceAdmin,
		Items:        []ItemInput{singleItemInput()},
	})

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, order, persisted)

	// 120000 * 1.0 m², already a step multiple
	assert.Equal(t, int64(120000), order.Items[0].UnitPrice)
	assert.Equal(t, int64(120000), order.Financials.SubTotal)
	assert.True(t, order.TaxEnabled, "tax default comes from the catalog")
	assert.Equal(t, int64(9), order.TaxRate)
	assert.Equal(t, int64(10800), order.Financials.TaxAmount)
	assert.Equal(t, domain.PaymentUnpaid, order.Financials.PaymentStatus)

	// 260828 digits sum 26, flags 0+1, seq 007 sum 7 -> 34 mod 10
	assert.Equal(t, "260828-01-007-4", order.OrderCode)
}

func Test_OrderService_Create_RequiresItemsAndCustomer(t *testing.T) {
	svc := NewOrderService(&mockOrderStore{}, &mockCatalogStore{})

	_, err := svc.Create(context.Background(), CreateOrderParams{CustomerName: "X"})
	assert.ErrorIs(t, err, domain.ErrOrderEmpty)

	_, err = svc.Create(context.Background(), CreateOrderParams{
		CustomerName: "   ",
		Items:        []ItemInput{singleItemInput()},
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNameRequired)
}

// storedOrder wires Get/Update to a single in-memory order, the common shape
// for mutation tests.
func storedOrder(t *testing.T, svc *OrderService, orders *mockOrderStore) *domain.Order {
	t.Helper()

	var current *domain.Order
	orders.CreateFunc = func(ctx context.Context, order *domain.Order) error {
		current = order
		return nil
	}
	orders.GetFunc = func(ctx context.Context, id string) (*domain.Order, error) {
		if current == nil || current.ID != id {
			return nil, domain.ErrOrderNotFound
		}
		clone := *current
		return &clone, nil
	}
	orders.UpdateFunc = func(ctx context.Context, order *domain.Order) error {
		current = order
		return nil
	}

	order, err := svc.Create(context.Background(), CreateOrderParams{
		CustomerName: "A. Customer",
		Items:        []ItemInput{singleItemInput()},
	})
	require.NoError(t, err)
	return order
}

func Test_OrderService_RecordPayment(t *testing.T) {
	orders := &mockOrderStore{}
	svc := NewOrderService(orders, &mockCatalogStore{})
	svc.now = fixedTime
	order := storedOrder(t, svc, orders)

	updated, err := svc.RecordPayment(context.Background(), order.ID, PaymentInput{
		Amount: 50000,
		Method: "cash",
	})
	require.NoError(t, err)
	require.Len(t, updated.Payments, 1)
	assert.Equal(t, int64(50000), updated.Financials.PaidTotal)
	assert.Equal(t, domain.PaymentPartial, updated.Financials.PaymentStatus)
}

func Test_OrderService_RecordPayment_RejectsNonPositive(t *testing.T) {
	orders := &mockOrderStore{}
	svc := NewOrderService(orders, &mockCatalogStore{})
	svc.now = fixedTime
	order := storedOrder(t, svc, orders)

	_, err := svc.RecordPayment(context.Background(), order.ID, PaymentInput{Amount: 0})
	assert.ErrorIs(t, err, domain.ErrPaymentNotPositive)

	_, err = svc.RecordPayment(context.Background(), order.ID, PaymentInput{Amount: -100})
	assert.ErrorIs(t, err, domain.ErrPaymentNotPositive)
}

// A laminate line submitted without the isLaminated flag must still be priced
// as laminated and persisted with the flag set. The structural kind alone
// decides the assembly shape.
func Test_OrderService_LaminateItemWithoutFlag(t *testing.T) {
	orders := &mockOrderStore{}
	svc := NewOrderService(orders, &mockCatalogStore{})
	svc.now = fixedTime
	order := storedOrder(t, svc, orders)

	updated, err := svc.AddItem(context.Background(), order.ID, ItemInput{
		Title:          "Laminated balustrade",
		StructuralKind: domain.KindLaminate,
		Dimensions:     domain.Dimensions{Width: 100, Height: 100, Count: 1},
		Config: domain.AssemblyConfig{Laminate: domain.Pane{
			Glass1:       domain.GlassLayer{GlassID: "g1", Thick: 6},
			InterlayerID: "il1",
			Glass2:       domain.GlassLayer{GlassID: "g1", Thick: 6},
		}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)

	item := updated.Items[1]
	assert.True(t, item.Config.Laminate.IsLaminated)
	// glass 2*120000 + interlayer 90000 + laminating 120000 + fixed 30000
	assert.Equal(t, int64(480000), item.UnitPrice)
}

func Test_OrderService_RecordPayment_RejectsUnknownMethod(t *testing.T) {
	orders := &mockOrderStore{}
	svc := NewOrderService(orders, &mockCatalogStore{})
	svc.now = fixedTime
	order := storedOrder(t, svc, orders)

	_, err := svc.RecordPayment(context.Background(), order.ID, PaymentInput{
		Amount: 50000,
		Method: "check",
	})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.EINVALID))
}

func Test_OrderService_UpdatePayment_ClearsReceipt(t *testing.T) {
	orders := &mockOrderStore{}
	svc := NewOrderService(orders, &mockCatalogStore{})
	svc.now = fixedTime
	order := storedOrder(t, svc, orders)

	withReceipt, err := svc.RecordPayment(context.Background(), order.ID, PaymentInput{
		Amount:  50000,
		Method:  "cash",
		Receipt: &domain.Attachment{FilePath: "receipts/r1.pdf", OriginalName: "r1.pdf"},
	})
	require.NoError(t, err)
	require.NotNil(t, withReceipt.Payments[0].Receipt)

	// An update without receipt fields leaves the attachment alone.
	kept, err := svc.UpdatePayment(context.Background(), order.ID, withReceipt.Payments[0].ID, PaymentInput{
		Amount: 60000,
		Method: "cash",
	})
	require.NoError(t, err)
	require.NotNil(t, kept.Payments[0].Receipt)

	cleared, err := svc.UpdatePayment(context.Background(), order.ID, withReceipt.Payments[0].ID, PaymentInput{
		Amount:       60000,
		Method:       "cash",
		ClearReceipt: true,
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.Payments[0].Receipt)
}

func Test_OrderService_ItemMutationsRecomputeFinancials(t *testing.T) {
	orders := &mockOrderStore{}
	svc := NewOrderService(orders, &mockCatalogStore{})
	svc.now = fixedTime
	order := storedOrder(t, svc, orders)

	withSecond, err := svc.AddItem(context.Background(), order.ID, singleItemInput())
	require.NoError(t, err)
	require.Len(t, withSecond.Items, 2)
	assert.Equal(t, int64(240000), withSecond.Financials.SubTotal)

	removed, err := svc.RemoveItem(context.Background(), order.ID, withSecond.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, removed.Items, 1)
	assert.Equal(t, int64(120000), removed.Financials.SubTotal)

	_, err = svc.RemoveItem(context.Background(), order.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrLineItemNotFound)
}

func Test_OrderService_UpdateItem_KeepsID(t *testing.T) {
	orders := &mockOrderStore{}
	svc := NewOrderService(orders, &mockCatalogStore{})
	svc.now = fixedTime
	order := storedOrder(t, svc, orders)

	input := singleItemInput()
	input.Dimensions.Count = 3
	updated, err := svc.UpdateItem(context.Background(), order.ID, order.Items[0].ID, input)

	require.NoError(t, err)
	assert.Equal(t, order.Items[0].ID, updated.Items[0].ID)
	assert.Equal(t, int64(360000), updated.Financials.SubTotal)
}

func Test_OrderService_SetDiscountAndTax(t *testing.T) {
	orders := &mockOrderStore{}
	svc := NewOrderService(orders, &mockCatalogStore{})
	svc.now = fixedTime
	order := storedOrder(t, svc, orders)

	discounted, err := svc.SetInvoiceDiscount(context.Background(), order.ID, domain.Discount{
		Type: domain.DiscountPercent, Value: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), discounted.Financials.InvoiceDiscountAmount)

	untaxed, err := svc.SetTax(context.Background(), order.ID, false, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(0), untaxed.Financials.TaxAmount)

	clamped, err := svc.SetTax(context.Background(), order.ID, true, 900)
	require.NoError(t, err)
	assert.Equal(t, int64(100), clamped.TaxRate, "out-of-range rate is clamped")
}

func Test_OrderService_DeleteRequiresArchive(t *testing.T) {
	orders := &mockOrderStore{}
	svc := NewOrderService(orders, &mockCatalogStore{})
	svc.now = fixedTime
	order := storedOrder(t, svc, orders)

	err := svc.Delete(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotArchived)

	_, err = svc.Archive(context.Background(), order.ID)
	require.NoError(t, err)

	deleted := false
	orders.DeleteFunc = func(ctx context.Context, id string) error {
		deleted = true
		return nil
	}
	require.NoError(t, svc.Delete(context.Background(), order.ID))
	assert.True(t, deleted)
}

func Test_OrderService_ManualItem(t *testing.T) {
	orders := &mockOrderStore{}
	svc := NewOrderService(orders, &mockCatalogStore{})
	svc.now = fixedTime
	order := storedOrder(t, svc, orders)

	updated, err := svc.AddItem(context.Background(), order.ID, ItemInput{
		Title:           "Site measurement",
		StructuralKind:  domain.KindManual,
		Dimensions:      domain.Dimensions{Count: 2},
		ManualUnitPrice: 90000,
		Taxable:         false,
	})
	require.NoError(t, err)

	manual := updated.Items[1]
	assert.Equal(t, int64(90000), manual.UnitPrice)
	assert.Equal(t, int64(180000), manual.TotalPrice)
	assert.False(t, manual.Meta.IsBelowFloor)

	// manual non-taxable line contributes no tax
	assert.Equal(t, int64(10800), updated.Financials.TaxAmount, "tax still only on the catalog line")
}
