package openweather

import (
	"context"
	"sync"
	"time"

	"github.com/couchcryptid/coastal-early-warning/internal/domain"
	"github.com/couchcryptid/coastal-early-warning/internal/observability"
	"github.com/couchcryptid/coastal-early-warning/internal/pipeline"
)

// CachedSource decorates a WeatherSource with a per-location TTL cache.
// Forecast data changes on the provider's refresh cadence, so repeated
// assessments for the same location within the TTL reuse one fetch.
type CachedSource struct {
	inner   pipeline.WeatherSource
	ttl     time.Duration
	metrics *observability.Metrics

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	observations []domain.WeatherObservation
	expiresAt    time.Time
}

// NewCachedSource creates a cache decorator around a weather source.
func NewCachedSource(inner pipeline.WeatherSource, ttl time.Duration, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		metrics: metrics,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedSource) ForecastObservations(ctx context.Context, location string) ([]domain.WeatherObservation, error) {
	if observations, ok := c.lookup(location); ok {
		c.metrics.ForecastCache.WithLabelValues("hit").Inc()
		return observations, nil
	}
	c.metrics.ForecastCache.WithLabelValues("miss").Inc()

	observations, err := c.inner.ForecastObservations(ctx, location)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[location] = cacheEntry{observations: observations, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return observations, nil
}

func (c *CachedSource) lookup(location string) ([]domain.WeatherObservation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[location]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.observations, true
}
