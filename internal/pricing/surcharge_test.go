package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitraworks/vitra/internal/domain"
	"github.com/vitraworks/vitra/internal/pricing"
)

func Test_ResolveJumboRule(t *testing.T) {
	rules := []domain.JumboRule{
		{MinDim: 200, MaxDim: 320, Type: domain.JumboPercentage, Value: 10},
		{MinDim: 321, MaxDim: 0, Type: domain.JumboFixed, Value: 500000},
	}

	tests := []struct {
		name     string
		maxDim   float64
		expected *int64 // expected rule value, nil = no rule
	}{
		{"below every threshold", 150, nil},
		{"inside the bounded range", 250, ptr(int64(10))},
		{"at the unbounded threshold", 321, ptr(int64(500000))},
		{"far beyond the unbounded threshold", 900, ptr(int64(500000))},
		{"at the bounded upper edge", 320, ptr(int64(10))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := pricing.ResolveJumboRule(tt.maxDim, rules)
			if tt.expected == nil {
				assert.Nil(t, rule)
			} else {
				assert.NotNil(t, rule)
				assert.Equal(t, *tt.expected, rule.Value)
			}
		})
	}
}

// Among overlapping matches the highest value wins; equal values go to the
// later rule in list order.
func Test_ResolveJumboRule_SelectionOrder(t *testing.T) {
	rules := []domain.JumboRule{
		{MinDim: 100, MaxDim: 0, Type: domain.JumboFixed, Value: 200000},
		{MinDim: 150, MaxDim: 0, Type: domain.JumboFixed, Value: 800000},
		{MinDim: 120, MaxDim: 0, Type: domain.JumboPercentage, Value: 800000},
	}

	rule := pricing.ResolveJumboRule(400, rules)
	assert.NotNil(t, rule)
	assert.Equal(t, domain.JumboPercentage, rule.Type, "tie on value resolves to the later rule")
}

func Test_ApplyJumboSurcharge(t *testing.T) {
	percentage := &domain.JumboRule{Type: domain.JumboPercentage, Value: 15}
	fixed := &domain.JumboRule{Type: domain.JumboFixed, Value: 500000}

	assert.InDelta(t, 150000, pricing.ApplyJumboSurcharge(1000000, percentage), 1e-9)
	assert.InDelta(t, 500000, pricing.ApplyJumboSurcharge(1000000, fixed), 1e-9)
	assert.Zero(t, pricing.ApplyJumboSurcharge(1000000, nil))
}

func ptr[T any](v T) *T { return &v }
