package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
)

// Epsilon below which a non-manual upsert is treated as unchanged, in
// base-currency units. Skipping these writes keeps effectiveAt and
// provenance from churning on every scrape cycle.
const epsilon = 1e-4

// RateStore keeps current rates in process memory. Used when no database
// is configured and as the reference implementation for store semantics.
type RateStore struct {
	mu      sync.RWMutex
	records map[string]domain.RateRecord
}

func NewRateStore() *RateStore {
	return &RateStore{records: make(map[string]domain.RateRecord)}
}

func (s *RateStore) Upsert(_ context.Context, code string, rate float64, source domain.Source, effectiveAt time.Time) (domain.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[code]
	if ok && source != domain.SourceManual && math.Abs(existing.Rate-rate) < epsilon {
		return domain.UpsertResult{Created: false, Record: existing}, nil
	}

	rec := domain.RateRecord{Code: code, Rate: rate, Source: source, EffectiveAt: effectiveAt}
	s.records[code] = rec
	return domain.UpsertResult{Created: true, Record: rec}, nil
}

func (s *RateStore) GetCurrent(_ context.Context, code string) (*domain.RateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[code]
	if !ok {
		return nil, domain.ErrRateNotFound
	}
	return &rec, nil
}

func (s *RateStore) GetAllCurrent(_ context.Context) ([]domain.RateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.RateRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *RateStore) Freshness(_ context.Context) (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *time.Time
	for _, rec := range s.records {
		if latest == nil || rec.EffectiveAt.After(*latest) {
			t := rec.EffectiveAt
			latest = &t
		}
	}
	return latest, nil
}
