package adapters

import (
	"context"
	"time"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
)

// SourceClient retrieves one raw document from a configured upstream.
// Transport failures and non-success statuses wrap
// domain.ErrUpstreamUnavailable so callers can classify them.
type SourceClient interface {
	Fetch(ctx context.Context) (string, error)
}

// RateStore keeps the latest rate per currency code. Upserts from
// non-manual sources skip the write when the new value is numerically
// indistinguishable from the stored one; manual upserts always write.
type RateStore interface {
	Upsert(ctx context.Context, code string, rate float64, source domain.Source, effectiveAt time.Time) (domain.UpsertResult, error)
	GetCurrent(ctx context.Context, code string) (*domain.RateRecord, error)
	GetAllCurrent(ctx context.Context) ([]domain.RateRecord, error)
	Freshness(ctx context.Context) (*time.Time, error)
}

// SnapshotCache holds recently read current-rate snapshots so public
// reads never block on the store or on an in-flight refresh.
type SnapshotCache interface {
	Get(key string) ([]domain.RateRecord, bool)
	Set(key string, records []domain.RateRecord)
	Drop(keys ...string)
}
