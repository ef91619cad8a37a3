package scrape

import (
	"math"
	"strconv"
	"strings"
)

// ParseLooseNumber parses a numeric string whose formatting locale is
// unknown. Upstream sources mix "1.234,56" and "1234.56" unpredictably,
// so the decimal separator is inferred per string: when both '.' and ','
// appear, ',' is taken as the decimal separator and '.' as a thousands
// separator; a lone ',' is taken as the decimal separator.
// Returns ok=false for empty or non-finite input.
func ParseLooseNumber(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	hasDot := strings.Contains(cleaned, ".")
	hasComma := strings.Contains(cleaned, ",")
	switch {
	case hasDot && hasComma:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case hasComma:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
