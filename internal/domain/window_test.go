package domain_test

import (
	"errors"
	"testing"

	"github.com/couchcryptid/coastal-early-warning/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i)
	}
	return s
}

func TestAssembleWindow_ExactLengthIsIdentity(t *testing.T) {
	features := sequence(40)

	w, err := domain.AssembleWindow(features, 40)
	require.NoError(t, err)
	assert.Equal(t, domain.FeatureWindow(features), w)
}

func TestAssembleWindow_LongInputKeepsMostRecent(t *testing.T) {
	features := sequence(45)

	w, err := domain.AssembleWindow(features, 40)
	require.NoError(t, err)
	require.Len(t, w, 40)
	assert.Equal(t, 5.0, w[0])
	assert.Equal(t, 44.0, w[39])
	assert.Equal(t, domain.FeatureWindow(features[5:]), w)
}

func TestAssembleWindow_ShortInputFails(t *testing.T) {
	_, err := domain.AssembleWindow(sequence(39), 40)

	var insufficient *domain.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 39, insufficient.Got)
	assert.Equal(t, 40, insufficient.Need)
}

func TestAssembleWindow_CopiesInput(t *testing.T) {
	features := sequence(40)

	w, err := domain.AssembleWindow(features, 40)
	require.NoError(t, err)

	features[0] = 999
	assert.Equal(t, 0.0, w[0])
}

func TestFeatureWindow_Last(t *testing.T) {
	w := domain.FeatureWindow{1, 2, 3}
	assert.Equal(t, 3.0, w.Last())
}

func TestFeatureWindow_Stats(t *testing.T) {
	w := domain.FeatureWindow{4, 8, 6}

	s := w.Stats()
	assert.InDelta(t, 6.0, s.Mean, 1e-9)
	assert.Equal(t, 4.0, s.Min)
	assert.Equal(t, 8.0, s.Max)
}

func TestInsufficientDataError_Message(t *testing.T) {
	err := error(&domain.InsufficientDataError{Got: 3, Need: 40})
	assert.Equal(t, "insufficient data: got 3 features, need 40", err.Error())
	assert.False(t, errors.Is(err, domain.ErrModelsUnavailable))
}
