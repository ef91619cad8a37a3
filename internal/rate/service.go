package rate

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/adapters"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/scrape"
)

const snapshotKey = "current"

type Service struct {
	store       adapters.RateStore
	cache       adapters.SnapshotCache
	validator   *CurrencyValidator
	publicCodes map[string]struct{}
	mirror      adapters.SourceClient // preferred JSON source, may be nil
	scraper     adapters.SourceClient // HTML fallback, may be nil
}

func NewService(
	store adapters.RateStore,
	cache adapters.SnapshotCache,
	validator *CurrencyValidator,
	publicCodes map[string]struct{},
	mirror adapters.SourceClient,
	scraper adapters.SourceClient,
) *Service {
	return &Service{
		store:       store,
		cache:       cache,
		validator:   validator,
		publicCodes: maps.Clone(publicCodes),
		mirror:      mirror,
		scraper:     scraper,
	}
}

// Override applies manual rate entries. Values arrive as raw strings and
// go through the loose number parser, so "295,50" is as valid as
// "295.50". Valid entries are applied and invalid ones skipped; the
// request fails only when nothing at all was valid.
func (s *Service) Override(ctx context.Context, entries map[string]string) (RefreshResult, error) {
	now := time.Now().UTC()
	applied := make([]domain.RateRecord, 0, len(entries))
	skipped := 0

	for _, rawCode := range slices.Sorted(maps.Keys(entries)) {
		code := s.validator.Normalize(rawCode)
		if code == domain.BaseCurrency || !s.validator.IsKnown(code) {
			skipped++
			continue
		}
		v, ok := scrape.ParseLooseNumber(entries[rawCode])
		if !ok || v <= 0 {
			skipped++
			continue
		}

		up, err := s.store.Upsert(ctx, code, v, domain.SourceManual, now)
		if err != nil {
			return RefreshResult{}, fmt.Errorf("failed to store manual rate for %q: %w", code, err)
		}
		applied = append(applied, up.Record)
	}

	if len(applied) == 0 {
		return RefreshResult{}, domain.ErrNoValidRates
	}

	s.cache.Drop(snapshotKey)
	logrus.WithFields(logrus.Fields{"applied": len(applied), "skipped": skipped}).Info("Manual rate override applied")

	return RefreshResult{Source: domain.SourceManual, AsOf: now, Items: applied}, nil
}

// PublicRates returns the curated public subset. It degrades to a
// base-only view when nothing has ever been stored and never fails on an
// empty store.
func (s *Service) PublicRates(ctx context.Context) (RatesView, error) {
	records, err := s.currentRecords(ctx)
	if err != nil {
		return RatesView{}, err
	}
	return buildView(records, s.publicCodes), nil
}

// AllRates returns every stored code. Unlike the public read it reports
// domain.ErrRateNotFound when the store is completely empty, which the
// legacy endpoint maps to 404.
func (s *Service) AllRates(ctx context.Context) (RatesView, error) {
	records, err := s.currentRecords(ctx)
	if err != nil {
		return RatesView{}, err
	}
	if len(records) == 0 {
		return RatesView{}, domain.ErrRateNotFound
	}
	return buildView(records, nil), nil
}

// ConvertAmount converts minor units between two known currencies using
// current rates and returns the converted amount with its display form.
// Missing rates degrade to the unchanged amount.
func (s *Service) ConvertAmount(ctx context.Context, amountMinor int64, from, to string) (int64, string, error) {
	from = s.validator.Normalize(from)
	to = s.validator.Normalize(to)

	records, err := s.currentRecords(ctx)
	if err != nil {
		return 0, "", err
	}

	rates := make(map[string]float64, len(records))
	for _, rec := range records {
		rates[rec.Code] = rec.Rate
	}

	converted := Convert(amountMinor, from, to, rates)
	return converted, FormatAmount(converted, to), nil
}

func (s *Service) KnownCodes() []string {
	return s.validator.KnownCodes()
}

// currentRecords serves reads from the snapshot cache so they never
// block on an in-flight refresh; stale-but-available wins over blocking.
func (s *Service) currentRecords(ctx context.Context) ([]domain.RateRecord, error) {
	if records, ok := s.cache.Get(snapshotKey); ok {
		return records, nil
	}

	records, err := s.store.GetAllCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read current rates: %w", err)
	}
	s.cache.Set(snapshotKey, records)
	return records, nil
}
