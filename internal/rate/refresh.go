package rate

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/adapters"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/scrape"
)

// RefreshNow runs one fetch-extract-store cycle against the configured
// upstream. The JSON mirror is preferred when both sources are set; the
// HTML scrape target is the fallback. Failures stay classifiable for the
// caller: domain.ErrNotConfigured, domain.ErrUpstreamUnavailable and
// domain.ErrParseEmpty are all reachable through errors.Is.
func (s *Service) RefreshNow(ctx context.Context) (RefreshResult, error) {
	execID := uuid.NewString()

	client, kind, source := s.pickSource()
	if client == nil {
		return RefreshResult{}, domain.ErrNotConfigured
	}

	doc, err := client.Fetch(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("fetch from %s source failed: %w", source, err)
	}

	res := scrape.Extract(doc, kind, s.validator.knownSet)
	if len(res.Rates) == 0 {
		// Distinguish "page structure changed" from "mirror feed broken"
		// so the operator knows where to look.
		hint := "scrape target structure may have changed"
		if kind == scrape.KindJSON {
			hint = "mirror response carries no usable rates"
		}
		return RefreshResult{}, fmt.Errorf("%w: %s", domain.ErrParseEmpty, hint)
	}

	now := time.Now().UTC()
	items := make([]domain.RateRecord, 0, len(res.Rates))
	written := 0
	for _, code := range slices.Sorted(maps.Keys(res.Rates)) {
		if code == domain.BaseCurrency {
			continue
		}
		up, upErr := s.store.Upsert(ctx, code, res.Rates[code], source, now)
		if upErr != nil {
			return RefreshResult{}, fmt.Errorf("failed to store rate for %q: %w", code, upErr)
		}
		if up.Created {
			written++
		}
		items = append(items, up.Record)
	}

	s.cache.Drop(snapshotKey)
	logrus.WithFields(logrus.Fields{
		"exec_id":   execID,
		"source":    source,
		"strategy":  res.Strategy,
		"extracted": len(items),
		"written":   written,
	}).Info("Rates refreshed")

	return RefreshResult{Source: source, Strategy: res.Strategy, AsOf: now, Items: items}, nil
}

func (s *Service) pickSource() (adapters.SourceClient, scrape.Kind, domain.Source) {
	if s.mirror != nil {
		return s.mirror, scrape.KindJSON, domain.SourceMirror
	}
	if s.scraper != nil {
		return s.scraper, scrape.KindHTML, domain.SourceScrape
	}
	return nil, "", ""
}
