package weather

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/cache"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

var logger = slog.Default()

// CachedProvider serves observations from a local store and falls through to
// the wrapped provider on miss or expiry. A fetch failure with a stale cache
// still fails: the safety pipeline must not run on silently outdated heat
// data.
type CachedProvider struct {
	provider Provider
	store    *cache.ObservationStore
}

// NewCachedProvider wraps a provider with an observation store
func NewCachedProvider(provider Provider, store *cache.ObservationStore) *CachedProvider {
	return &CachedProvider{provider: provider, store: store}
}

// Current returns the cached observation for the coordinate cell when fresh,
// fetching and caching otherwise.
func (c *CachedProvider) Current(ctx context.Context, latitude, longitude float64) (models.EnvironmentalData, error) {
	key := locationKey(latitude, longitude)

	if env, err := c.store.Get(key); err == nil {
		return *env, nil
	}

	env, err := c.provider.Current(ctx, latitude, longitude)
	if err != nil {
		return models.EnvironmentalData{}, err
	}

	if err := c.store.Save(key, env); err != nil {
		logger.Warn("Failed to cache observation", "key", key, "error", err)
	}

	return env, nil
}

// locationKey buckets coordinates into ~1 km cells so nearby lookups share a
// cache entry.
func locationKey(latitude, longitude float64) string {
	return fmt.Sprintf("obs-%.2f-%.2f", latitude, longitude)
}
