package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/coastal-early-warning/internal/domain"
	"github.com/couchcryptid/coastal-early-warning/internal/observability"
)

// Entry modes, used as metric labels and for the stats attachment rule.
const (
	modeDirect = "direct"
	modeLive   = "live"
)

// ErrLiveDisabled is returned by AssessLive when no weather provider is
// configured.
var ErrLiveDisabled = errors.New("live assessment disabled: no weather provider configured")

// WeatherSource supplies the ordered short-horizon forecast for a coastal
// location. Implementations surface provider failures as UpstreamDataError.
type WeatherSource interface {
	ForecastObservations(ctx context.Context, location string) ([]domain.WeatherObservation, error)
}

// AlertPublisher delivers HIGH-risk assessments to downstream consumers.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, location string, assessment domain.RiskAssessment) error
}

// Pipeline orchestrates one assessment: extract, window, forecast, score,
// classify, report. Each invocation owns its window and assessment; the only
// shared state is the read-only model handles and the ready flag.
type Pipeline struct {
	forecaster domain.Forecaster
	scorer     domain.AnomalyScorer
	weather    WeatherSource  // nil disables the live path
	alerts     AlertPublisher // nil disables alert publishing
	logger     *slog.Logger
	metrics    *observability.Metrics
	windowSize int
	thresholds domain.Thresholds

	// modelsReady gates every entry point. Set once by SetModelsReady after
	// the model handles have been verified; the service refuses assessments
	// rather than failing inside each one.
	modelsReady atomic.Bool
}

// New creates a Pipeline. weather and alerts may be nil to disable the live
// path and alert publishing respectively.
func New(
	forecaster domain.Forecaster,
	scorer domain.AnomalyScorer,
	weather WeatherSource,
	alerts AlertPublisher,
	logger *slog.Logger,
	metrics *observability.Metrics,
	windowSize int,
	thresholds domain.Thresholds,
) *Pipeline {
	return &Pipeline{
		forecaster: forecaster,
		scorer:     scorer,
		weather:    weather,
		alerts:     alerts,
		logger:     logger,
		metrics:    metrics,
		windowSize: windowSize,
		thresholds: thresholds,
	}
}

// SetModelsReady records whether both model handles loaded successfully.
func (p *Pipeline) SetModelsReady(ready bool) {
	p.modelsReady.Store(ready)
	if ready {
		p.metrics.ModelsReady.Set(1)
	} else {
		p.metrics.ModelsReady.Set(0)
	}
}

// CheckReadiness returns nil when both models are loaded and serving.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.modelsReady.Load() {
		return domain.ErrModelsUnavailable
	}
	return nil
}

// Assess runs the direct numeric entry mode: the input is an already
// extracted feature sequence and must match the window size exactly. Explicit
// input is authoritative — no truncation happens on this path, unlike the
// live-collection path.
func (p *Pipeline) Assess(ctx context.Context, features []float64) (domain.RiskAssessment, error) {
	if err := p.CheckReadiness(ctx); err != nil {
		return domain.RiskAssessment{}, err
	}

	// Validated before any model call so a malformed request never spends an
	// external prediction.
	if len(features) != p.windowSize {
		return domain.RiskAssessment{}, &domain.InsufficientDataError{Got: len(features), Need: p.windowSize}
	}

	window, err := domain.AssembleWindow(features, p.windowSize)
	if err != nil {
		return domain.RiskAssessment{}, err
	}

	return p.run(ctx, window, modeDirect, "")
}

// AssessLive fetches observations for a location from the weather
// collaborator, extracts features, windows them with recency truncation, and
// assesses. Window summary statistics are attached on this path only.
func (p *Pipeline) AssessLive(ctx context.Context, location string) (domain.RiskAssessment, error) {
	if err := p.CheckReadiness(ctx); err != nil {
		return domain.RiskAssessment{}, err
	}
	if p.weather == nil {
		return domain.RiskAssessment{}, ErrLiveDisabled
	}

	observations, err := p.weather.ForecastObservations(ctx, location)
	if err != nil {
		return domain.RiskAssessment{}, err
	}

	features := domain.ExtractFeatures(observations)
	window, err := domain.AssembleWindow(features, p.windowSize)
	if err != nil {
		return domain.RiskAssessment{}, err
	}

	assessment, err := p.run(ctx, window, modeLive, location)
	if err != nil {
		return domain.RiskAssessment{}, err
	}

	stats := window.Stats()
	assessment.WindowStats = &stats
	return assessment, nil
}

// run invokes both models, classifies, and reports. The two model calls are
// independent but cheap; they execute sequentially within the invocation.
func (p *Pipeline) run(ctx context.Context, window domain.FeatureWindow, mode, location string) (domain.RiskAssessment, error) {
	start := time.Now()

	forecast, err := p.forecaster.Predict(ctx, window)
	if err != nil {
		return domain.RiskAssessment{}, p.modelFailure(domain.ModelForecaster, err)
	}

	verdict, err := p.scorer.Score(ctx, window.Last())
	if err != nil {
		return domain.RiskAssessment{}, p.modelFailure(domain.ModelAnomalyScorer, err)
	}

	level, alert := domain.Classify(forecast, verdict, p.thresholds)

	assessment := domain.RiskAssessment{
		ForecastValue: forecast,
		IsAnomaly:     verdict == domain.VerdictAnomalous,
		RiskLevel:     level,
		AlertMessage:  alert,
		ProducedAt:    domain.Now(),
	}

	p.metrics.AssessmentsTotal.WithLabelValues(mode, string(level)).Inc()
	p.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("assessment completed",
		"mode", mode,
		"location", location,
		"forecast", forecast,
		"verdict", verdict.String(),
		"risk_level", level,
	)

	if level == domain.RiskHigh {
		p.publishAlert(ctx, location, assessment)
	}

	return assessment, nil
}

// modelFailure wraps a model error, letting shape-contract violations
// surface unwrapped: those are caller bugs caught before the model ran, not
// model failures.
func (p *Pipeline) modelFailure(model string, err error) error {
	var shape *domain.ShapeMismatchError
	if errors.As(err, &shape) {
		return err
	}
	p.metrics.PredictionErrors.WithLabelValues(model).Inc()
	p.logger.Error("model prediction failed", "model", model, "error", err)
	return &domain.PredictionError{Model: model, Err: err}
}

// publishAlert is best-effort: a sink failure is logged and counted but never
// fails the assessment that triggered it.
func (p *Pipeline) publishAlert(ctx context.Context, location string, assessment domain.RiskAssessment) {
	if p.alerts == nil {
		return
	}
	if err := p.alerts.PublishAlert(ctx, location, assessment); err != nil {
		p.metrics.AlertPublishErrors.Inc()
		p.logger.Warn("alert publish failed", "location", location, "error", err)
		return
	}
	p.metrics.AlertsPublished.Inc()
}
