package routing

import (
	"math"
	"sync"
	"time"

	"stormrisk/internal/types"
)

// cacheKey identifies one 0.5-degree cell and target month. Requests mapping
// to the same key reuse the stored baseline for the process lifetime.
type cacheKey struct {
	lat   float64
	lon   float64
	month time.Month
}

// BaselineCache stores long-range baseline records keyed by rounded
// coordinate and target month. Entries never expire.
type BaselineCache struct {
	mu      sync.Mutex
	entries map[cacheKey]types.WeatherValues
}

func NewBaselineCache() *BaselineCache {
	return &BaselineCache{entries: make(map[cacheKey]types.WeatherValues)}
}

// roundHalf snaps a coordinate to the nearest 0.5 degrees.
func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

func keyFor(c types.Coordinate, month time.Month) cacheKey {
	return cacheKey{lat: roundHalf(c.Latitude), lon: roundHalf(c.Longitude), month: month}
}

// Get returns the cached baseline for the coordinate's cell and month.
func (b *BaselineCache) Get(c types.Coordinate, month time.Month) (types.WeatherValues, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.entries[keyFor(c, month)]
	return v, ok
}

// Put stores a baseline record. Concurrent writers of the same key derive
// identical values, so last write wins harmlessly.
func (b *BaselineCache) Put(c types.Coordinate, month time.Month, v types.WeatherValues) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[keyFor(c, month)] = v
}

// Len reports the number of cached cells.
func (b *BaselineCache) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
