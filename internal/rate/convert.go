package rate

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
)

// Convert converts an amount in minor units (cents) between two
// currencies. The rate table only stores code→base ratios, so every
// conversion routes through the base currency, never code to code.
// A missing or non-positive rate degrades to returning the amount
// unchanged: a wrong or absent display must not break checkout.
// Rounding is half-to-even and applied once, at the final step.
func Convert(amountMinor int64, from, to string, rates map[string]float64) int64 {
	if from == to {
		return amountMinor
	}

	rateFrom, ok := resolveRate(from, rates)
	if !ok {
		return amountMinor
	}
	rateTo, ok := resolveRate(to, rates)
	if !ok {
		return amountMinor
	}

	// minor→units and units→minor cancel, so the whole conversion is a
	// single multiply/divide over the minor-unit amount.
	return decimal.NewFromInt(amountMinor).
		Mul(decimal.NewFromFloat(rateFrom)).
		Div(decimal.NewFromFloat(rateTo)).
		RoundBank(0).
		IntPart()
}

func resolveRate(code string, rates map[string]float64) (float64, bool) {
	if code == domain.BaseCurrency {
		return 1, true
	}
	r, ok := rates[code]
	if !ok || r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}
