package handler

import (
	"github.com/vitraworks/vitra/internal/domain"
	"github.com/vitraworks/vitra/internal/service"
)

// itemRequest is the wire form of one line item configuration. It is shared
// by the quote preview and the order item endpoints.
type itemRequest struct {
	Title          string                `json:"title"`
	StructuralKind string                `json:"structuralKind" validate:"required,oneof=single laminate double manual"`
	Dimensions     domain.Dimensions     `json:"dimensions"`
	Config         domain.AssemblyConfig `json:"config"`
	Operations     map[string]int        `json:"operations"`
	Pattern        domain.Pattern        `json:"pattern"`

	ManualUnitPrice int64 `json:"manualUnitPrice" validate:"gte=0"`
	Taxable         bool  `json:"taxable"`

	OverrideUnitPrice int64           `json:"overrideUnitPrice" validate:"gte=0"`
	OverrideReason    string          `json:"overrideReason"`
	ItemDiscount      domain.Discount `json:"itemDiscount"`
}

func (r *itemRequest) toInput() service.ItemInput {
	return service.ItemInput{
		Title:             r.Title,
		StructuralKind:    domain.StructuralKind(r.StructuralKind),
		Dimensions:        r.Dimensions,
		Config:            r.Config,
		Operations:        r.Operations,
		Pattern:           r.Pattern,
		ManualUnitPrice:   r.ManualUnitPrice,
		Taxable:           r.Taxable,
		OverrideUnitPrice: r.OverrideUnitPrice,
		OverrideReason:    r.OverrideReason,
		ItemDiscount:      r.ItemDiscount,
	}
}
