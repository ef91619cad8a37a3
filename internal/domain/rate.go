package domain

import (
	"time"
)

// BaseCurrency is the currency all stored rates are expressed against.
// It is fixed at rate 1 and is never fetched from an upstream.
const BaseCurrency = "CUP"

// Source records how a rate was obtained.
type Source string

const (
	SourceManual Source = "manual"
	SourceScrape Source = "scrape"
	SourceMirror Source = "mirror"
)

// RateRecord is the current value of one currency in base-currency units.
// At most one current record exists per code; latest EffectiveAt wins.
type RateRecord struct {
	Code        string    `json:"code"`
	Rate        float64   `json:"rate"`
	Source      Source    `json:"source"`
	EffectiveAt time.Time `json:"effective_at"`
}

// UpsertResult reports whether an upsert wrote a new current record or
// was skipped because the stored value was numerically indistinguishable.
type UpsertResult struct {
	Created bool
	Record  RateRecord
}
