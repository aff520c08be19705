package openweather_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/couchcryptid/coastal-early-warning/internal/adapter/openweather"
	"github.com/couchcryptid/coastal-early-warning/internal/domain"
	"github.com/couchcryptid/coastal-early-warning/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls        int
	observations []domain.WeatherObservation
	err          error
}

func (s *countingSource) ForecastObservations(_ context.Context, _ string) ([]domain.WeatherObservation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.observations, nil
}

func TestCachedSource_ReusesFetchWithinTTL(t *testing.T) {
	inner := &countingSource{observations: []domain.WeatherObservation{domain.DefaultObservation()}}
	cached := openweather.NewCachedSource(inner, time.Minute, observability.NewMetricsForTesting())

	first, err := cached.ForecastObservations(context.Background(), "miami")
	require.NoError(t, err)
	second, err := cached.ForecastObservations(context.Background(), "miami")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedSource_DistinctLocationsDistinctEntries(t *testing.T) {
	inner := &countingSource{observations: []domain.WeatherObservation{domain.DefaultObservation()}}
	cached := openweather.NewCachedSource(inner, time.Minute, observability.NewMetricsForTesting())

	_, err := cached.ForecastObservations(context.Background(), "miami")
	require.NoError(t, err)
	_, err = cached.ForecastObservations(context.Background(), "boston")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedSource_ExpiredEntryRefetches(t *testing.T) {
	inner := &countingSource{observations: []domain.WeatherObservation{domain.DefaultObservation()}}
	cached := openweather.NewCachedSource(inner, -time.Nanosecond, observability.NewMetricsForTesting())

	_, err := cached.ForecastObservations(context.Background(), "miami")
	require.NoError(t, err)
	_, err = cached.ForecastObservations(context.Background(), "miami")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	inner := &countingSource{err: errors.New("provider down")}
	cached := openweather.NewCachedSource(inner, time.Minute, observability.NewMetricsForTesting())

	_, err := cached.ForecastObservations(context.Background(), "miami")
	require.Error(t, err)

	inner.err = nil
	inner.observations = []domain.WeatherObservation{domain.DefaultObservation()}
	observations, err := cached.ForecastObservations(context.Background(), "miami")
	require.NoError(t, err)
	assert.Len(t, observations, 1)
	assert.Equal(t, 2, inner.calls)
}
