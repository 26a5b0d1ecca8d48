package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/vitraworks/vitra/internal/domain"
	"github.com/vitraworks/vitra/internal/pricing"
	"github.com/vitraworks/vitra/internal/service"
	"github.com/vitraworks/vitra/internal/telemetry"
)

// QuoteHandler prices a line configuration without persisting anything.
// The authoring UI calls this on every configuration change.
type QuoteHandler struct {
	catalog  *service.CatalogService
	metrics  *telemetry.BusinessMetrics
	validate *validator.Validate
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(catalog *service.CatalogService, metrics *telemetry.BusinessMetrics, validate *validator.Validate) *QuoteHandler {
	return &QuoteHandler{catalog: catalog, metrics: metrics, validate: validate}
}

type quoteResponse struct {
	Violations []string `json:"violations,omitempty"`

	Area      float64 `json:"area"`
	Perimeter float64 `json:"perimeter"`
	Count     int     `json:"count"`

	AssemblyCost   float64 `json:"assemblyCost"`
	OperationsCost float64 `json:"operationsCost"`
	PatternFee     float64 `json:"patternFee"`
	Surcharge      float64 `json:"surcharge"`

	UnitPrice int64 `json:"unitPrice"`
	LineTotal int64 `json:"lineTotal"`

	Meta domain.PricingMeta `json:"pricingMeta"`
}

// Preview handles POST /api/quote. Manual lines skip the pricer entirely;
// everything else is priced against the current catalog snapshot.
func (h *QuoteHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	input := req.toInput()
	count := pricing.NormalizeCount(input.Dimensions.Count)

	if input.StructuralKind == domain.KindManual {
		meta := pricing.BuildManualMeta(input.ManualUnitPrice, count, input.ItemDiscount)
		h.metrics.QuotesPriced.WithLabelValues(string(domain.KindManual)).Inc()
		RespondJSON(w, http.StatusOK, quoteResponse{
			Count:     count,
			UnitPrice: meta.CatalogUnitPrice,
			LineTotal: meta.CatalogLineTotal,
			Meta:      meta,
		})
		return
	}

	cat, err := h.catalog.Get(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}

	quote := pricing.New(cat).Price(input.StructuralKind, input.Dimensions, input.Config, input.Operations, input.Pattern)
	meta := pricing.BuildCatalogMeta(pricing.CatalogMetaParams{
		CatalogUnitPrice:  quote.UnitPrice,
		Count:             quote.Count,
		FloorPercent:      cat.Billing.PriceFloorPercent,
		OverrideUnitPrice: input.OverrideUnitPrice,
		OverrideReason:    input.OverrideReason,
		ItemDiscount:      input.ItemDiscount,
	})

	h.metrics.QuotesPriced.WithLabelValues(string(input.StructuralKind)).Inc()
	if len(quote.Violations) > 0 {
		h.metrics.QuoteViolations.Inc()
	}
	if quote.Surcharge > 0 {
		h.metrics.JumboSurcharges.Inc()
	}
	if meta.IsBelowFloor {
		h.metrics.BelowFloorQuotes.Inc()
	}

	RespondJSON(w, http.StatusOK, quoteResponse{
		Violations:     quote.Violations,
		Area:           quote.Area,
		Perimeter:      quote.Perimeter,
		Count:          quote.Count,
		AssemblyCost:   quote.AssemblyCost,
		OperationsCost: quote.OperationsCost,
		PatternFee:     quote.PatternFee,
		Surcharge:      quote.Surcharge,
		UnitPrice:      quote.UnitPrice,
		LineTotal:      quote.LineTotal,
		Meta:           meta,
	})
}

type suggestInterlayerRequest struct {
	Pane domain.Pane `json:"pane"`
}

// SuggestInterlayer handles POST /api/quote/interlayer. It re-resolves a
// laminated pane's interlayer after a thickness change.
func (h *QuoteHandler) SuggestInterlayer(w http.ResponseWriter, r *http.Request) {
	var req suggestInterlayerRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	cat, err := h.catalog.Get(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}

	// Asking for an interlayer implies a laminated pane.
	req.Pane.IsLaminated = true
	pricing.SuggestInterlayer(cat, &req.Pane)
	RespondJSON(w, http.StatusOK, req.Pane)
}

type setSekuritRequest struct {
	Layer   domain.GlassLayer `json:"layer"`
	Sekurit bool              `json:"sekurit"`
}

// SetSekurit handles POST /api/quote/sekurit. It toggles the tempered flag
// and re-resolves the glass id within the same family.
func (h *QuoteHandler) SetSekurit(w http.ResponseWriter, r *http.Request) {
	var req setSekuritRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	cat, err := h.catalog.Get(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}

	pricing.SetSekurit(cat, &req.Layer, req.Sekurit)
	RespondJSON(w, http.StatusOK, req.Layer)
}
