package pricing

import (
	"fmt"
	"time"

	"github.com/vitraworks/vitra/internal/domain"
)

// OrderCode derives the human-readable order code from the order date, the
// structural flags, and the 1-based daily sequence. Deterministic: the same
// inputs always produce the same code, so a printed code can be re-verified.
//
// Shape: {yyMMdd}-{hasPattern}{isAdmin}-{seq}-{k} where seq is zero-padded to
// three digits and k is the mod-10 sum of every decimal digit before it.
func OrderCode(date time.Time, hasPattern bool, source domain.OrderSource, dailySequence int) string {
	day := date.Format("060102")

	patternFlag := 0
	if hasPattern {
		patternFlag = 1
	}
	adminFlag := 0
	if source == domain.SourceAdmin {
		adminFlag = 1
	}

	if dailySequence < 1 {
		dailySequence = 1
	}
	seq := fmt.Sprintf("%03d", dailySequence)

	body := fmt.Sprintf("%s%d%d%s", day, patternFlag, adminFlag, seq)
	sum := 0
	for _, r := range body {
		if r >= '0' && r <= '9' {
			sum += int(r - '0')
		}
	}

	return fmt.Sprintf("%s-%d%d-%s-%d", day, patternFlag, adminFlag, seq, sum%10)
}
