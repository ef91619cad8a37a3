package rate

import (
	"time"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
)

// RatesView is a read snapshot of current rates. The base currency is
// always present at 1; AsOf is nil when nothing has ever been stored.
type RatesView struct {
	AsOf  *time.Time
	Rates map[string]float64
}

// RefreshResult reports one successful refresh or override cycle.
type RefreshResult struct {
	Source   domain.Source
	Strategy string
	AsOf     time.Time
	Items    []domain.RateRecord
}

func buildView(records []domain.RateRecord, filter map[string]struct{}) RatesView {
	view := RatesView{Rates: map[string]float64{domain.BaseCurrency: 1}}

	var latest *time.Time
	for _, rec := range records {
		if latest == nil || rec.EffectiveAt.After(*latest) {
			t := rec.EffectiveAt
			latest = &t
		}
		if filter != nil {
			if _, ok := filter[rec.Code]; !ok {
				continue
			}
		}
		view.Rates[rec.Code] = rec.Rate
	}
	view.AsOf = latest
	return view
}
