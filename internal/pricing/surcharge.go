package pricing

import "github.com/vitraworks/vitra/internal/domain"

// ResolveJumboRule selects the oversize surcharge rule for the larger of
// width/height. Among rules whose [MinDim, MaxDim] range contains the
// dimension (MaxDim 0 = unbounded), the one with the highest value wins;
// ties go to the later rule in list order. Returns nil when none match.
func ResolveJumboRule(maxDim float64, rules []domain.JumboRule) *domain.JumboRule {
	var selected *domain.JumboRule
	for i := range rules {
		rule := &rules[i]
		if maxDim < float64(rule.MinDim) {
			continue
		}
		if rule.MaxDim != 0 && maxDim > float64(rule.MaxDim) {
			continue
		}
		if selected == nil || rule.Value >= selected.Value {
			selected = rule
		}
	}
	return selected
}

// ApplyJumboSurcharge returns the surcharge for a unit running total under
// the given rule: a percentage of the total or a flat amount. The running
// total already includes operations and the pattern fee; rounding happens
// after the surcharge.
func ApplyJumboSurcharge(runningTotal float64, rule *domain.JumboRule) float64 {
	if rule == nil {
		return 0
	}
	switch rule.Type {
	case domain.JumboPercentage:
		return runningTotal * float64(rule.Value) / 100
	case domain.JumboFixed:
		return float64(rule.Value)
	}
	return 0
}
