package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vitraworks/vitra/internal/domain"
	"github.com/vitraworks/vitra/internal/service"
	"github.com/vitraworks/vitra/internal/telemetry"
)

// OrderHandler exposes the order lifecycle over JSON.
type OrderHandler struct {
	orders   *service.OrderService
	metrics  *telemetry.BusinessMetrics
	validate *validator.Validate
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders *service.OrderService, metrics *telemetry.BusinessMetrics, validate *validator.Validate) *OrderHandler {
	return &OrderHandler{orders: orders, metrics: metrics, validate: validate}
}

type createOrderRequest struct {
	CustomerName string        `json:"customerName" validate:"required"`
	Phone        string        `json:"phone"`
	Source       string        `json:"source" validate:"omitempty,oneof=customer admin"`
	Items        []itemRequest `json:"items" validate:"required,min=1,dive"`
	InvoiceNotes string        `json:"invoiceNotes"`
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	params := service.CreateOrderParams{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Source:       domain.OrderSource(req.Source),
		InvoiceNotes: req.InvoiceNotes,
	}
	for i := range req.Items {
		params.Items = append(params.Items, req.Items[i].toInput())
	}

	order, err := h.orders.Create(r.Context(), params)
	if err != nil {
		Error(w, r, err)
		return
	}

	h.metrics.OrdersCreated.WithLabelValues(string(order.Source)).Inc()
	h.metrics.OrderValue.Observe(float64(order.Financials.GrandTotal))
	h.metrics.OrderItemCount.Observe(float64(len(order.Items)))

	RespondJSON(w, http.StatusCreated, order)
}

// CreatePublic handles POST /api/public/orders, the unauthenticated customer
// intake. The source is forced to customer and pricing controls reserved for
// staff (overrides, discounts, manual lines) are stripped.
func (h *OrderHandler) CreatePublic(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	params := service.CreateOrderParams{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Source:       domain.SourceCustomer,
		InvoiceNotes: req.InvoiceNotes,
	}
	for i := range req.Items {
		input := req.Items[i].toInput()
		if input.StructuralKind == domain.KindManual {
			Error(w, r, domain.Errorf(domain.EINVALID, "", "Manual line items require staff access"))
			return
		}
		input.OverrideUnitPrice = 0
		input.OverrideReason = ""
		input.ItemDiscount = domain.Discount{Type: domain.DiscountNone}
		params.Items = append(params.Items, input)
	}

	order, err := h.orders.Create(r.Context(), params)
	if err != nil {
		Error(w, r, err)
		return
	}

	h.metrics.OrdersCreated.WithLabelValues(string(order.Source)).Inc()
	h.metrics.OrderValue.Observe(float64(order.Financials.GrandTotal))
	h.metrics.OrderItemCount.Observe(float64(len(order.Items)))

	RespondJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders?archived=true&limit=50&offset=0.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	includeArchived := q.Get("archived") == "true"
	limit := parseInt32(q.Get("limit"), 50)
	offset := parseInt32(q.Get("offset"), 0)

	orders, err := h.orders.List(r.Context(), includeArchived, limit, offset)
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, order)
}

// GetByCode handles GET /api/orders/code/{code}, the lookup used when a
// customer reads their order code over the phone.
func (h *OrderHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, order)
}

// AddItem handles POST /api/orders/{id}/items.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	order, err := h.orders.AddItem(r.Context(), r.PathValue("id"), req.toInput())
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, order)
}

// UpdateItem handles PUT /api/orders/{id}/items/{itemID}.
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	order, err := h.orders.UpdateItem(r.Context(), r.PathValue("id"), r.PathValue("itemID"), req.toInput())
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, order)
}

// RemoveItem handles DELETE /api/orders/{id}/items/{itemID}.
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.RemoveItem(r.Context(), r.PathValue("id"), r.PathValue("itemID"))
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, order)
}

type paymentRequest struct {
	Date      time.Time          `json:"date"`
	Amount    int64              `json:"amount" validate:"required,gt=0"`
	Method    string             `json:"method"`
	Reference string             `json:"reference"`
	Note      string             `json:"note"`
	Receipt   *domain.Attachment `json:"receipt"`
	// ClearReceipt detaches an existing receipt on update.
	ClearReceipt bool `json:"clearReceipt"`
}

func (r *paymentRequest) toInput() service.PaymentInput {
	return service.PaymentInput{
		Date:         r.Date,
		Amount:       r.Amount,
		Method:       r.Method,
		Reference:    r.Reference,
		Note:         r.Note,
		Receipt:      r.Receipt,
		ClearReceipt: r.ClearReceipt,
	}
}

// RecordPayment handles POST /api/orders/{id}/payments.
func (h *OrderHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	order, err := h.orders.RecordPayment(r.Context(), r.PathValue("id"), req.toInput())
	if err != nil {
		Error(w, r, err)
		return
	}

	h.metrics.PaymentsRecorded.Inc()
	h.metrics.PaymentValue.Observe(float64(req.Amount))
	if order.Financials.PaymentStatus == domain.PaymentPaid {
		h.metrics.OrdersSettled.Inc()
	}

	RespondJSON(w, http.StatusOK, order)
}

// UpdatePayment handles PUT /api/orders/{id}/payments/{paymentID}.
func (h *OrderHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	order, err := h.orders.UpdatePayment(r.Context(), r.PathValue("id"), r.PathValue("paymentID"), req.toInput())
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, order)
}

// DeletePayment handles DELETE /api/orders/{id}/payments/{paymentID}.
func (h *OrderHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.DeletePayment(r.Context(), r.PathValue("id"), r.PathValue("paymentID"))
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, order)
}

type discountRequest struct {
	Type  string `json:"type" validate:"required,oneof=none fixed percent"`
	Value int64  `json:"value" validate:"gte=0"`
}

// SetDiscount handles PUT /api/orders/{id}/discount.
func (h *OrderHandler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	var req discountRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	order, err := h.orders.SetInvoiceDiscount(r.Context(), r.PathValue("id"), domain.Discount{
		Type:  domain.DiscountType(req.Type),
		Value: req.Value,
	})
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, order)
}

type taxRequest struct {
	Enabled bool  `json:"enabled"`
	Rate    int64 `json:"rate" validate:"gte=0"`
}

// SetTax handles PUT /api/orders/{id}/tax.
func (h *OrderHandler) SetTax(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	order, err := h.orders.SetTax(r.Context(), r.PathValue("id"), req.Enabled, req.Rate)
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, order)
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// SetNotes handles PUT /api/orders/{id}/notes.
func (h *OrderHandler) SetNotes(w http.ResponseWriter, r *http.Request) {
	var req notesRequest
	if err := DecodeValid(r, h.validate, &req); err != nil {
		Error(w, r, err)
		return
	}

	order, err := h.orders.SetInvoiceNotes(r.Context(), r.PathValue("id"), req.Notes)
	if err != nil {
		Error(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, order)
}

// Archive handles POST /api/orders/{id}/archive.
func (h *OrderHandler) Archive(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Archive(r.Context(), r.PathValue("id"))
	if err != nil {
		Error(w, r, err)
		return
	}

	h.metrics.OrdersArchived.Inc()
	RespondJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /api/orders/{id}. Only archived orders may be
// deleted permanently.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		Error(w, r, err)
		return
	}

	h.metrics.OrdersDeleted.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func parseInt32(s string, fallback int32) int32 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}
