package pricing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitraworks/vitra/internal/domain"
	"github.com/vitraworks/vitra/internal/pricing"
)

func Test_EffectiveArea(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		expected      float64
	}{
		{"square meter", 100, 100, 1.0},
		{"large pane", 321, 600, 19.26},
		{"below fabrication floor", 20, 30, 0.25},
		{"exactly at floor", 50, 50, 0.25},
		{"zero width", 0, 100, 0},
		{"zero height", 100, 0, 0},
		{"negative coerced to zero", -5, 100, 0},
		{"non-numeric coerced to zero", math.NaN(), 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, pricing.EffectiveArea(tt.width, tt.height), 1e-9)
		})
	}
}

func Test_Perimeter(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		expected      float64
	}{
		{"square meter pane", 100, 100, 4.0},
		{"large pane", 321, 600, 18.42},
		{"zero width", 0, 100, 0},
		{"negative height", 100, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, pricing.Perimeter(tt.width, tt.height), 1e-9)
		})
	}
}

func Test_NormalizeCount(t *testing.T) {
	assert.Equal(t, 1, pricing.NormalizeCount(0))
	assert.Equal(t, 1, pricing.NormalizeCount(-3))
	assert.Equal(t, 1, pricing.NormalizeCount(1))
	assert.Equal(t, 7, pricing.NormalizeCount(7))
}

func Test_ValidateDimensions(t *testing.T) {
	limits := domain.FactoryLimits{MaxWidth: 321, MaxHeight: 600}

	tests := []struct {
		name          string
		width, height float64
		valid         bool
	}{
		{"well within limits", 100, 200, true},
		{"exactly at limits", 321, 600, true},
		{"fits only via axis swap", 400, 50, true},
		{"swapped at limits", 600, 321, true},
		{"too wide in both orientations", 700, 50, false},
		{"too large overall", 400, 700, false},
		{"zero dimensions fit", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := pricing.ValidateDimensions(tt.width, tt.height, limits)
			if tt.valid {
				assert.Empty(t, violations)
			} else {
				assert.NotEmpty(t, violations)
			}
		})
	}
}
