package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vitraworks/vitra/internal/domain"
	"github.com/vitraworks/vitra/internal/pricing"
)

func Test_OrderCode_Format(t *testing.T) {
	date := time.Date(2026, 8, 28, 14, 30, 0, 0, time.Local)

	// digits 260828 sum 26, flags 1+0, seq 005 sum 5 -> 32 mod 10 = 2
	code := pricing.OrderCode(date, true, domain.SourceCustomer, 5)
	assert.Equal(t, "260828-10-005-2", code)
}

func Test_OrderCode_Flags(t *testing.T) {
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name       string
		hasPattern bool
		source     domain.OrderSource
		seq        int
		expected   string
	}{
		// digits 260102 sum 11
		{"customer without pattern", false, domain.SourceCustomer, 1, "260102-00-001-2"},
		{"admin without pattern", false, domain.SourceAdmin, 1, "260102-01-001-3"},
		{"customer with pattern", true, domain.SourceCustomer, 1, "260102-10-001-3"},
		{"admin with pattern", true, domain.SourceAdmin, 1, "260102-11-001-4"},
		{"three digit sequence", false, domain.SourceCustomer, 123, "260102-00-123-7"},
		{"sequence coerced to one", false, domain.SourceCustomer, 0, "260102-00-001-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pricing.OrderCode(date, tt.hasPattern, tt.source, tt.seq))
		})
	}
}

// Same date, flags, and sequence always produce the same code string,
// including the checksum digit.
func Test_OrderCode_Deterministic(t *testing.T) {
	date := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)

	first := pricing.OrderCode(date, true, domain.SourceAdmin, 42)
	second := pricing.OrderCode(date, true, domain.SourceAdmin, 42)
	laterSameDay := pricing.OrderCode(date.Add(8*time.Hour), true, domain.SourceAdmin, 42)

	assert.Equal(t, first, second)
	assert.Equal(t, first, laterSameDay, "time of day does not affect the code")
}
