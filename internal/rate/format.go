package rate

import (
	"github.com/shopspring/decimal"
)

// Symbols for the ISO codes this storefront displays with a prefix.
// Everything else, including the base currency and non-ISO codes like
// MLC, falls back to an "amount CODE" suffix since standard currency
// formatters only recognize ISO 4217 codes.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatAmount renders an amount in minor units for display.
func FormatAmount(amountMinor int64, code string) string {
	units := decimal.NewFromInt(amountMinor).Div(decimal.NewFromInt(100)).StringFixed(2)
	if sym, ok := currencySymbols[code]; ok {
		return sym + units
	}
	return units + " " + code
}
