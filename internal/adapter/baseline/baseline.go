// Package baseline provides deterministic local predictors used when no
// model bridge is configured. They honor the same call contracts as the
// trained models so the pipeline and CLI can run without the serving sidecar,
// with no claim of forecasting skill.
package baseline

import (
	"context"
	"math"

	"github.com/couchcryptid/coastal-early-warning/internal/domain"
)

// MeanForecaster forecasts the window mean. It enforces the same shape
// contract as the trained forecaster.
type MeanForecaster struct {
	windowSize int
}

// NewMeanForecaster creates a forecaster expecting windows of windowSize steps.
func NewMeanForecaster(windowSize int) *MeanForecaster {
	return &MeanForecaster{windowSize: windowSize}
}

func (f *MeanForecaster) Predict(_ context.Context, window domain.FeatureWindow) (float64, error) {
	if len(window) != f.windowSize {
		return 0, &domain.ShapeMismatchError{Got: len(window), Want: f.windowSize}
	}
	return window.Stats().Mean, nil
}

// ZScoreScorer flags feature values far outside a fixed reference band. The
// parameters are set once at construction; the scorer is read-only afterward
// and safe for concurrent use.
type ZScoreScorer struct {
	center float64
	spread float64
	limit  float64
}

// NewZScoreScorer creates a scorer flagging values more than limit spreads
// from center.
func NewZScoreScorer(center, spread, limit float64) *ZScoreScorer {
	return &ZScoreScorer{center: center, spread: spread, limit: limit}
}

// DefaultZScoreScorer is tuned to the feature band: centered on the
// default-observation score with a spread wide enough that ordinary weather
// stays normal.
func DefaultZScoreScorer() *ZScoreScorer {
	return NewZScoreScorer(7.4, 1.5, 3)
}

func (s *ZScoreScorer) Score(_ context.Context, value float64) (domain.Verdict, error) {
	if math.Abs(value-s.center)/s.spread > s.limit {
		return domain.VerdictAnomalous, nil
	}
	return domain.VerdictNormal, nil
}
