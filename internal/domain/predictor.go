package domain

import "context"

// Forecaster maps a full feature window to a single scalar forecast. The
// window is presented to the underlying model as one sample of N time steps
// with one channel; implementations must reject any other length with a
// ShapeMismatchError before invoking the model.
type Forecaster interface {
	Predict(ctx context.Context, window FeatureWindow) (float64, error)
}

// AnomalyScorer classifies one recent feature value against a fitted
// reference distribution. It deliberately receives only the window's most
// recent value, never the sequence: the detector was trained on a
// one-dimensional distribution.
type AnomalyScorer interface {
	Score(ctx context.Context, value float64) (Verdict, error)
}
