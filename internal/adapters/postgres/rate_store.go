package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
)

// Matches the in-memory store: non-manual writes inside this band are
// skipped to avoid churning effectiveAt on every scrape cycle.
const epsilon = 1e-4

type RateStore struct {
	pool *pgxpool.Pool
}

func NewRateStore(pool *pgxpool.Pool) *RateStore {
	return &RateStore{pool: pool}
}

// Upsert writes the current record for a code. The conditional update
// pushes the epsilon-skip decision into the database so concurrent
// upserts for the same code stay last-write-wins without extra locking.
func (s *RateStore) Upsert(ctx context.Context, code string, rate float64, source domain.Source, effectiveAt time.Time) (domain.UpsertResult, error) {
	const q = `
        insert into fx_rates (code, rate, source, effective_at)
        values ($1, $2, $3, $4)
        on conflict (code) do update
          set rate = excluded.rate, source = excluded.source, effective_at = excluded.effective_at
          where excluded.source = 'manual' or abs(fx_rates.rate - excluded.rate) >= $5
        returning code, rate, source, effective_at;
    `

	var rec domain.RateRecord
	err := s.pool.QueryRow(ctx, q, code, rate, string(source), effectiveAt, epsilon).Scan(
		&rec.Code, &rec.Rate, &rec.Source, &rec.EffectiveAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		// Write skipped by the epsilon guard; return the stored record.
		existing, getErr := s.GetCurrent(ctx, code)
		if getErr != nil {
			return domain.UpsertResult{}, fmt.Errorf("failed to read rate for %q after skipped upsert: %w", code, getErr)
		}
		return domain.UpsertResult{Created: false, Record: *existing}, nil
	}
	if err != nil {
		return domain.UpsertResult{}, fmt.Errorf("failed to upsert rate for %q: %w", code, err)
	}
	return domain.UpsertResult{Created: true, Record: rec}, nil
}

func (s *RateStore) GetCurrent(ctx context.Context, code string) (*domain.RateRecord, error) {
	const q = `select code, rate, source, effective_at from fx_rates where code = $1;`

	var rec domain.RateRecord
	if err := s.pool.QueryRow(ctx, q, code).Scan(&rec.Code, &rec.Rate, &rec.Source, &rec.EffectiveAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRateNotFound
		}
		return nil, fmt.Errorf("failed to select rate for %q: %w", code, err)
	}
	return &rec, nil
}

func (s *RateStore) GetAllCurrent(ctx context.Context) ([]domain.RateRecord, error) {
	const q = `select code, rate, source, effective_at from fx_rates order by code;`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer rows.Close()

	records := make([]domain.RateRecord, 0, 16)
	for rows.Next() {
		var rec domain.RateRecord
		if err = rows.Scan(&rec.Code, &rec.Rate, &rec.Source, &rec.EffectiveAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rates: %w", err)
	}
	return records, nil
}

func (s *RateStore) Freshness(ctx context.Context) (*time.Time, error) {
	const q = `select max(effective_at) from fx_rates;`

	var ts *time.Time
	if err := s.pool.QueryRow(ctx, q).Scan(&ts); err != nil {
		return nil, fmt.Errorf("failed to select freshness: %w", err)
	}
	return ts, nil
}
