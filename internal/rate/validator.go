package rate

import (
	"maps"
	"slices"
	"strings"
)

// CurrencyValidator holds the known-code set. Known codes are the
// admin-visible currencies tracked internally; the base currency is
// implicit everywhere and deliberately not part of the set, since it is
// never fetched or overridden.
type CurrencyValidator struct {
	knownSet map[string]struct{} // read only copy
	knownLst []string            // read only copy
}

func NewValidator(knownCodes map[string]struct{}) *CurrencyValidator {
	codesSet := maps.Clone(knownCodes)
	codesLst := slices.Collect(maps.Keys(codesSet))
	slices.Sort(codesLst)

	return &CurrencyValidator{
		knownSet: codesSet,
		knownLst: codesLst,
	}
}

func (v *CurrencyValidator) Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (v *CurrencyValidator) IsKnown(code string) bool {
	_, ok := v.knownSet[code]
	return ok
}

func (v *CurrencyValidator) KnownCodes() []string {
	return slices.Clone(v.knownLst)
}
