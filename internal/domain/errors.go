package domain

import (
	"errors"
	"fmt"
)

// ErrModelsUnavailable is the sentinel state entered when model handles
// failed to load. Every assessment entry point checks it before doing any
// work; the service refuses requests rather than failing per call.
var ErrModelsUnavailable = errors.New("prediction models unavailable")

// InsufficientDataError reports fewer features or observations than the
// configured window requires. A client-input condition, never retried.
type InsufficientDataError struct {
	Got  int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: got %d features, need %d", e.Got, e.Need)
}

// ShapeMismatchError reports a window whose length does not match the shape
// a predictor was trained on. A programming or configuration defect caught
// before the predictor is invoked, not a recoverable runtime condition.
type ShapeMismatchError struct {
	Got  int
	Want int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: window length %d, model expects %d", e.Got, e.Want)
}

// Model names used in PredictionError.
const (
	ModelForecaster    = "forecaster"
	ModelAnomalyScorer = "anomaly_scorer"
)

// PredictionError wraps an external model failure, identifying which model
// failed. The whole assessment fails; no partial result is returned.
type PredictionError struct {
	Model string
	Err   error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("%s prediction failed: %v", e.Model, e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }

// UpstreamDataError wraps a weather-collaborator failure. Transient by
// nature: callers may retry the whole request, the core does not.
type UpstreamDataError struct {
	Err error
}

func (e *UpstreamDataError) Error() string {
	return fmt.Sprintf("upstream weather data: %v", e.Err)
}

func (e *UpstreamDataError) Unwrap() error { return e.Err }
