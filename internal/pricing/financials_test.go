package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitraworks/vitra/internal/domain"
	"github.com/vitraworks/vitra/internal/pricing"
)

func catalogItem(lineTotal int64) domain.OrderLineItem {
	return domain.OrderLineItem{
		StructuralKind: domain.KindSingle,
		TotalPrice:     lineTotal,
		Meta: &domain.PricingMeta{
			CatalogLineTotal: lineTotal,
			FinalLineTotal:   lineTotal,
		},
	}
}

// Subtotal 1,000,000 with a 10% invoice discount and 9% tax comes out to a
// 981,000 grand total.
func Test_ComputeFinancials_DiscountAndTax(t *testing.T) {
	fin := pricing.ComputeFinancials(
		[]domain.OrderLineItem{catalogItem(1000000)},
		domain.Discount{Type: domain.DiscountPercent, Value: 10},
		pricing.TaxPolicy{Enabled: true, Rate: 9},
		nil,
	)

	assert.Equal(t, int64(1000000), fin.SubTotal)
	assert.Equal(t, int64(100000), fin.InvoiceDiscountAmount)
	assert.Equal(t, int64(81000), fin.TaxAmount, "tax on the discounted 900,000")
	assert.Equal(t, int64(981000), fin.GrandTotal)
	assert.Equal(t, int64(981000), fin.DueAmount)
	assert.Equal(t, domain.PaymentUnpaid, fin.PaymentStatus)
}

// Payments of 500,000 then 481,000 settle the 981,000 invoice exactly.
func Test_ComputeFinancials_PaymentLedger(t *testing.T) {
	items := []domain.OrderLineItem{catalogItem(1000000)}
	discount := domain.Discount{Type: domain.DiscountPercent, Value: 10}
	tax := pricing.TaxPolicy{Enabled: true, Rate: 9}

	partial := pricing.ComputeFinancials(items, discount, tax, []domain.Payment{
		{Amount: 500000},
	})
	assert.Equal(t, int64(500000), partial.PaidTotal)
	assert.Equal(t, int64(481000), partial.DueAmount)
	assert.Equal(t, domain.PaymentPartial, partial.PaymentStatus)

	settled := pricing.ComputeFinancials(items, discount, tax, []domain.Payment{
		{Amount: 500000},
		{Amount: 481000},
	})
	assert.Equal(t, int64(981000), settled.PaidTotal)
	assert.Equal(t, int64(0), settled.DueAmount)
	assert.Equal(t, domain.PaymentPaid, settled.PaymentStatus)
}

func Test_ComputeFinancials_OverpaymentStaysPaid(t *testing.T) {
	fin := pricing.ComputeFinancials(
		[]domain.OrderLineItem{catalogItem(100000)},
		domain.Discount{},
		pricing.TaxPolicy{},
		[]domain.Payment{{Amount: 150000}},
	)

	assert.Equal(t, int64(0), fin.DueAmount, "due amount never goes negative")
	assert.Equal(t, domain.PaymentPaid, fin.PaymentStatus)
}

// Items created before pricing meta existed fall back to their stored total.
func Test_ComputeFinancials_LegacyItemsWithoutMeta(t *testing.T) {
	fin := pricing.ComputeFinancials(
		[]domain.OrderLineItem{
			{StructuralKind: domain.KindSingle, TotalPrice: 300000},
			catalogItem(200000),
		},
		domain.Discount{},
		pricing.TaxPolicy{},
		nil,
	)

	assert.Equal(t, int64(500000), fin.SubTotal)
	assert.Equal(t, int64(500000), fin.GrandTotal)
}

func Test_ComputeFinancials_ItemDiscountTotals(t *testing.T) {
	item := domain.OrderLineItem{
		StructuralKind: domain.KindSingle,
		Meta: &domain.PricingMeta{
			CatalogLineTotal:   500000,
			ItemDiscountAmount: 50000,
			FinalLineTotal:     450000,
		},
	}

	fin := pricing.ComputeFinancials([]domain.OrderLineItem{item}, domain.Discount{}, pricing.TaxPolicy{}, nil)

	assert.Equal(t, int64(500000), fin.SubTotal)
	assert.Equal(t, int64(50000), fin.ItemDiscountTotal)
	assert.Equal(t, int64(450000), fin.GrandTotal)
}

// Tax applies only to taxable lines, with the invoice-level discount spread
// proportionally across taxable and non-taxable lines first.
func Test_ComputeFinancials_TaxableProration(t *testing.T) {
	manualNonTaxable := domain.OrderLineItem{
		StructuralKind: domain.KindManual,
		Meta: &domain.PricingMeta{
			CatalogLineTotal: 400000,
			FinalLineTotal:   400000,
		},
	}

	fin := pricing.ComputeFinancials(
		[]domain.OrderLineItem{catalogItem(600000), manualNonTaxable},
		domain.Discount{Type: domain.DiscountFixed, Value: 100000},
		pricing.TaxPolicy{Enabled: true, Rate: 10},
		nil,
	)

	// after item discounts: 1,000,000; invoice discount 100,000 -> ratio 0.9
	// taxable base 600,000 * 0.9 = 540,000 -> tax 54,000
	assert.Equal(t, int64(100000), fin.InvoiceDiscountAmount)
	assert.Equal(t, int64(54000), fin.TaxAmount)
	assert.Equal(t, int64(954000), fin.GrandTotal)
}

func Test_ComputeFinancials_TaxableManualLine(t *testing.T) {
	manualTaxable := domain.OrderLineItem{
		StructuralKind: domain.KindManual,
		Taxable:        true,
		Meta: &domain.PricingMeta{
			CatalogLineTotal: 200000,
			FinalLineTotal:   200000,
		},
	}

	fin := pricing.ComputeFinancials(
		[]domain.OrderLineItem{manualTaxable},
		domain.Discount{},
		pricing.TaxPolicy{Enabled: true, Rate: 10},
		nil,
	)

	assert.Equal(t, int64(20000), fin.TaxAmount)
}

func Test_ComputeFinancials_EmptyOrder(t *testing.T) {
	fin := pricing.ComputeFinancials(nil, domain.Discount{}, pricing.TaxPolicy{Enabled: true, Rate: 9}, nil)

	assert.Equal(t, int64(0), fin.SubTotal)
	assert.Equal(t, int64(0), fin.TaxAmount)
	assert.Equal(t, int64(0), fin.GrandTotal)
	assert.Equal(t, domain.PaymentPaid, fin.PaymentStatus, "nothing due means paid")
}

func Test_ComputeFinancials_InvoiceDiscountBound(t *testing.T) {
	fin := pricing.ComputeFinancials(
		[]domain.OrderLineItem{catalogItem(100000)},
		domain.Discount{Type: domain.DiscountFixed, Value: 900000},
		pricing.TaxPolicy{},
		nil,
	)

	assert.Equal(t, int64(100000), fin.InvoiceDiscountAmount, "capped at the post-item-discount total")
	assert.Equal(t, int64(0), fin.GrandTotal)
}

// Recomputing from identical inputs yields identical output.
func Test_ComputeFinancials_Idempotence(t *testing.T) {
	items := []domain.OrderLineItem{catalogItem(777000), catalogItem(123000)}
	discount := domain.Discount{Type: domain.DiscountPercent, Value: 7}
	tax := pricing.TaxPolicy{Enabled: true, Rate: 9}
	payments := []domain.Payment{{Amount: 300000}}

	first := pricing.ComputeFinancials(items, discount, tax, payments)
	second := pricing.ComputeFinancials(items, discount, tax, payments)

	assert.Equal(t, first, second)
}

// Increasing a payment never increases the due amount and never moves the
// status away from paid.
func Test_ComputeFinancials_PaymentMonotonicity(t *testing.T) {
	items := []domain.OrderLineItem{catalogItem(500000)}

	var prevDue int64 = 1 << 62
	wasPaid := false
	for amount := int64(0); amount <= 600000; amount += 50000 {
		fin := pricing.ComputeFinancials(items, domain.Discount{}, pricing.TaxPolicy{}, []domain.Payment{{Amount: amount}})

		assert.LessOrEqual(t, fin.DueAmount, prevDue)
		if wasPaid {
			assert.Equal(t, domain.PaymentPaid, fin.PaymentStatus, "a paid order never becomes less paid")
		}
		prevDue = fin.DueAmount
		wasPaid = fin.PaymentStatus == domain.PaymentPaid
	}
}
