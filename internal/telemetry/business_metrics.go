// Package telemetry exposes Prometheus metrics for business-level
// observability, separate from the HTTP metrics in the middleware package.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Quoting
	QuotesPriced     *prometheus.CounterVec
	QuoteViolations  prometheus.Counter
	JumboSurcharges  prometheus.Counter
	BelowFloorQuotes prometheus.Counter

	// Orders
	OrdersCreated  *prometheus.CounterVec
	OrdersArchived prometheus.Counter
	OrdersDeleted  prometheus.Counter
	OrderValue     prometheus.Histogram
	OrderItemCount prometheus.Histogram

	// Payments
	PaymentsRecorded prometheus.Counter
	PaymentValue     prometheus.Histogram
	OrdersSettled    prometheus.Counter

	// Catalog
	CatalogReplaced prometheus.Counter

	// Patterns
	PatternUploads *prometheus.CounterVec

	// Auth
	Logins      prometheus.Counter
	LoginFailed prometheus.Counter
}

// NewBusinessMetrics creates and registers all business metrics
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "vitra"
	}

	subsystem := "business"

	m := &BusinessMetrics{
		QuotesPriced: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quotes_priced_total",
				Help:      "Total line items priced, by structural kind",
			},
			[]string{"kind"},
		),
		QuoteViolations: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "quote_violations_total",
				Help:      "Total quotes rejected for exceeding factory limits",
			},
		),
		JumboSurcharges: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "jumbo_surcharges_total",
				Help:      "Total quotes that triggered an oversize surcharge",
			},
		),
		BelowFloorQuotes: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "below_floor_quotes_total",
				Help:      "Total manual price overrides below the configured floor",
			},
		),
		OrdersCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total orders created, by source",
			},
			[]string{"source"},
		),
		OrdersArchived: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_archived_total",
				Help:      "Total orders archived",
			},
		),
		OrdersDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_deleted_total",
				Help:      "Total orders permanently deleted",
			},
		),
		OrderValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value",
				Help:      "Order grand totals in minor currency units",
				Buckets:   prometheus.ExponentialBuckets(100000, 4, 10),
			},
		),
		OrderItemCount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of line items per order",
				Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
			},
		),
		PaymentsRecorded: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payments_recorded_total",
				Help:      "Total payment ledger entries recorded",
			},
		),
		PaymentValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payment_value",
				Help:      "Payment amounts in minor currency units",
				Buckets:   prometheus.ExponentialBuckets(100000, 4, 10),
			},
		),
		OrdersSettled: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_settled_total",
				Help:      "Total orders whose payment status reached paid",
			},
		),
		CatalogReplaced: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "catalog_replaced_total",
				Help:      "Total catalog document replacements",
			},
		),
		PatternUploads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pattern_uploads_total",
				Help:      "Total pattern files uploaded, by mime type",
			},
			[]string{"mime_type"},
		),
		Logins: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "logins_total",
				Help:      "Total successful staff logins",
			},
		),
		LoginFailed: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "login_failed_total",
				Help:      "Total failed login attempts",
			},
		),
	}

	return m
}
