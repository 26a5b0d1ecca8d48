// Package pricing is the order pricing and invoice financials engine.
//
// Every function here is a pure transformation from (catalog, configuration,
// items, payments) to a derived value. Nothing blocks, retries, or touches
// I/O; callers recompute on every input change and treat the catalog and the
// order as immutable snapshots during a single pass.
package pricing

import (
	"fmt"
	"math"

	"github.com/vitraworks/vitra/internal/domain"
)

// MinBillableArea is the fabrication floor in square meters. Smaller panes
// are billed as if they had this area.
const MinBillableArea = 0.25

// sanitizeDim coerces non-numeric or negative dimension input to 0.
func sanitizeDim(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// EffectiveArea returns the billable area in square meters for one piece.
// Zero if either dimension is not positive, otherwise floored at
// MinBillableArea.
func EffectiveArea(width, height float64) float64 {
	width, height = sanitizeDim(width), sanitizeDim(height)
	if width <= 0 || height <= 0 {
		return 0
	}
	return math.Max(MinBillableArea, width*height/10000)
}

// Perimeter returns the perimeter in meters for one piece, zero if either
// dimension is not positive.
func Perimeter(width, height float64) float64 {
	width, height = sanitizeDim(width), sanitizeDim(height)
	if width <= 0 || height <= 0 {
		return 0
	}
	return 2 * (width + height) / 100
}

// NormalizeCount coerces a piece count to an integer >= 1.
func NormalizeCount(count int) int {
	if count < 1 {
		return 1
	}
	return count
}

// ValidateDimensions checks a requested size against the factory envelope.
// A size fits if it fits in either axis orientation; the returned slice of
// human-readable violations is empty when valid.
func ValidateDimensions(width, height float64, limits domain.FactoryLimits) []string {
	width, height = sanitizeDim(width), sanitizeDim(height)

	maxW, maxH := float64(limits.MaxWidth), float64(limits.MaxHeight)
	fitsAsIs := width <= maxW && height <= maxH
	fitsSwapped := width <= maxH && height <= maxW

	if fitsAsIs || fitsSwapped {
		return nil
	}

	return []string{fmt.Sprintf(
		"dimensions %.0f×%.0f cm exceed the factory maximum of %d×%d cm in either orientation",
		width, height, limits.MaxWidth, limits.MaxHeight,
	)}
}

// roundUpToStep rounds a computed cost up to the next multiple of step.
// Steps below 1 are treated as 1.
func roundUpToStep(x float64, step int64) int64 {
	if step < 1 {
		step = 1
	}
	if x <= 0 {
		return 0
	}
	return int64(math.Ceil(x/float64(step))) * step
}

// roundInt rounds to the nearest integer currency unit.
func roundInt(x float64) int64 {
	return int64(math.Round(x))
}
