package pricing

import "github.com/vitraworks/vitra/internal/domain"

// TaxPolicy is the order-level tax setting fed into the financials fold.
type TaxPolicy struct {
	Enabled bool
	Rate    int64 // percent, clamped to [0,100]
}

// ComputeFinancials folds all line items, the invoice-level discount, the tax
// policy, and the payment ledger into the order's financial snapshot. It is a
// pure function: callers rerun it after every relevant mutation and persist
// the whole result.
//
// Every monetary intermediate is rounded to integer currency units before the
// next step; the compounding is intentional and must not be "fixed" by
// carrying fractions between steps.
func ComputeFinancials(
	items []domain.OrderLineItem,
	invoiceDiscount domain.Discount,
	tax TaxPolicy,
	payments []domain.Payment,
) domain.InvoiceFinancials {
	fin := domain.InvoiceFinancials{
		InvoiceDiscountType:  invoiceDiscount.Type,
		InvoiceDiscountValue: invoiceDiscount.Value,
		TaxEnabled:           tax.Enabled,
		TaxRate:              ClampPercent(tax.Rate),
	}
	if fin.InvoiceDiscountType == "" {
		fin.InvoiceDiscountType = domain.DiscountNone
	}

	// Items created before pricing meta existed fall back to their stored
	// total, undiscounted.
	var afterItemDiscount, taxableBase int64
	for i := range items {
		item := &items[i]

		lineSubTotal := item.TotalPrice
		lineFinal := item.TotalPrice
		if item.Meta != nil {
			lineSubTotal = item.Meta.CatalogLineTotal
			lineFinal = item.Meta.FinalLineTotal
			fin.ItemDiscountTotal += item.Meta.ItemDiscountAmount
		}

		fin.SubTotal += lineSubTotal
		afterItemDiscount += lineFinal

		// Catalog items are always taxable; manual lines carry a flag.
		if item.StructuralKind != domain.KindManual || item.Taxable {
			taxableBase += lineFinal
		}
	}

	fin.InvoiceDiscountAmount = DiscountAmount(invoiceDiscount, afterItemDiscount)

	discountedTotal := afterItemDiscount - fin.InvoiceDiscountAmount
	if discountedTotal < 0 {
		discountedTotal = 0
	}

	// Spread the invoice-level discount proportionally across taxable and
	// non-taxable lines before taxing. A deliberate approximation.
	ratio := 1.0
	if afterItemDiscount > 0 {
		ratio = float64(discountedTotal) / float64(afterItemDiscount)
	}

	if fin.TaxEnabled {
		fin.TaxAmount = roundInt(float64(taxableBase) * ratio * float64(fin.TaxRate) / 100)
	}

	fin.GrandTotal = discountedTotal + fin.TaxAmount

	for i := range payments {
		fin.PaidTotal += payments[i].Amount
	}

	fin.DueAmount = fin.GrandTotal - fin.PaidTotal
	if fin.DueAmount < 0 {
		fin.DueAmount = 0
	}

	switch {
	case fin.GrandTotal-fin.PaidTotal <= 0:
		fin.PaymentStatus = domain.PaymentPaid
	case fin.PaidTotal > 0:
		fin.PaymentStatus = domain.PaymentPartial
	default:
		fin.PaymentStatus = domain.PaymentUnpaid
	}

	return fin
}
