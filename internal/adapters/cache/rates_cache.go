package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
)

// RatesSnapshotCache holds current-rate snapshots between refresh cycles
// so public reads stay off the store. Entries are dropped explicitly
// after every write; a read between the write and the drop serves stale
// data, which is acceptable here since staleness is cosmetic.
type RatesSnapshotCache struct {
	cache *ristretto.Cache
}

func NewRatesSnapshotCache(maxItems int64) (*RatesSnapshotCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rates snapshot cache failed: %w", err)
	}
	return &RatesSnapshotCache{cache: c}, nil
}

func (c *RatesSnapshotCache) Get(key string) ([]domain.RateRecord, bool) {
	if v, ok := c.cache.Get(key); ok {
		records, ok := v.([]domain.RateRecord)
		return records, ok
	}
	return nil, false
}

func (c *RatesSnapshotCache) Set(key string, records []domain.RateRecord) {
	c.cache.Set(key, records, 1)
}

func (c *RatesSnapshotCache) Drop(keys ...string) {
	for _, key := range keys {
		c.cache.Del(key)
	}
}

func (c *RatesSnapshotCache) Close() { c.cache.Close() }
