package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vitraworks/vitra/internal/domain"
	"github.com/vitraworks/vitra/internal/service"
	"github.com/vitraworks/vitra/internal/telemetry"
)

// CatalogHandler serves and replaces the pricing catalog.
type CatalogHandler struct {
	catalog *service.CatalogService
	metrics *telemetry.BusinessMetrics
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog *service.CatalogService, metrics *telemetry.BusinessMetrics) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, metrics: metrics}
}

// Get handles GET /api/catalog.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	cat, err := h.catalog.Get(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, cat)
}

// Replace handles PUT /api/catalog. The whole document is replaced; the
// catalog structure is validated by the service, not a DTO schema.
func (h *CatalogHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var cat domain.Catalog
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		Error(w, r, domain.Errorf(domain.EINVALID, "", "Malformed catalog document"))
		return
	}

	if err := h.catalog.Replace(r.Context(), &cat); err != nil {
		Error(w, r, err)
		return
	}

	h.metrics.CatalogReplaced.Inc()
	RespondJSON(w, http.StatusOK, &cat)
}
