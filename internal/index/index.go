// Package index holds the parsed station inventory in memory and serves
// feature lookups for the HTTP layer. Nearest-neighbour queries are cached
// with a small LRU keyed on the rounded target coordinates.
package index

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/ghcn-station-etl/internal/domain"
	"github.com/couchcryptid/ghcn-station-etl/internal/observability"
)

// Index is a read-only view over a loaded inventory.
type Index struct {
	inv      *domain.Inventory
	features map[string]domain.Feature
	coll     domain.FeatureCollection
	cache    *lruCache
	metrics  *observability.Metrics
	clock    clockwork.Clock
	loadedAt time.Time
}

// New builds an index from a parsed inventory. Features are precomputed
// once so request handlers never touch the raw stations.
func New(inv *domain.Inventory, cacheSize int, metrics *observability.Metrics, clock clockwork.Clock) *Index {
	stations := inv.Stations()
	features := make(map[string]domain.Feature, len(stations))
	ordered := make([]domain.Feature, 0, len(stations))
	for _, s := range stations {
		f := domain.FeatureFromStation(s)
		features[s.ID] = f
		ordered = append(ordered, f)
	}
	return &Index{
		inv:      inv,
		features: features,
		coll:     domain.NewFeatureCollection(ordered),
		cache:    newLRUCache(cacheSize),
		metrics:  metrics,
		clock:    clock,
		loadedAt: clock.Now(),
	}
}

// Collection returns the full feature collection in inventory order.
func (ix *Index) Collection() domain.FeatureCollection {
	return ix.coll
}

// Feature returns the feature for a station id.
func (ix *Index) Feature(id string) (domain.Feature, bool) {
	f, ok := ix.features[id]
	return f, ok
}

// Nearest returns the n stations closest to the target as features.
func (ix *Index) Nearest(lat, lon float64, n int) []domain.Feature {
	ix.metrics.NearestQueries.Inc()

	key := fmt.Sprintf("%.4f,%.4f|%d", lat, lon, n)
	if cached, ok := ix.cache.get(key); ok {
		ix.metrics.NearestCache.WithLabelValues("hit").Inc()
		return cached
	}
	ix.metrics.NearestCache.WithLabelValues("miss").Inc()

	stations := ix.inv.Nearest(lat, lon, n)
	features := make([]domain.Feature, 0, len(stations))
	for _, s := range stations {
		features = append(features, domain.FeatureFromStation(s))
	}
	ix.cache.put(key, features)
	return features
}

// Len returns the number of indexed stations.
func (ix *Index) Len() int {
	return ix.inv.Len()
}

// LoadedAt returns when the inventory was indexed.
func (ix *Index) LoadedAt() time.Time {
	return ix.loadedAt
}

// CheckReadiness reports whether the index can serve traffic.
func (ix *Index) CheckReadiness(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ix.inv.Len() == 0 {
		return errors.New("no stations loaded")
	}
	return nil
}
