package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// risk-assessment service.
type Metrics struct {
	AssessmentsTotal   *prometheus.CounterVec // labels: mode={direct,live}, level={LOW,MEDIUM,HIGH}
	AssessmentDuration prometheus.Histogram
	PredictionErrors   *prometheus.CounterVec // labels: model={forecaster,anomaly_scorer}
	ModelsReady        prometheus.Gauge

	// Weather collaborator metrics.
	UpstreamRequests *prometheus.CounterVec // labels: outcome={success,error}
	ForecastCache    *prometheus.CounterVec // labels: result={hit,miss}

	// Alert sink metrics.
	AlertsPublished    prometheus.Counter
	AlertPublishErrors prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastal_ew",
			Name:      "assessments_total",
			Help:      "Completed risk assessments by entry mode and resulting risk level.",
		}, []string{"mode", "level"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coastal_ew",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete assessment including model calls.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		PredictionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastal_ew",
			Name:      "prediction_errors_total",
			Help:      "External model failures by model.",
		}, []string{"model"}),
		ModelsReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "coastal_ew",
			Name:      "models_ready",
			Help:      "1 when both prediction models are loaded and serving, 0 otherwise.",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastal_ew",
			Name:      "upstream_requests_total",
			Help:      "Weather provider requests by outcome.",
		}, []string{"outcome"}),
		ForecastCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastal_ew",
			Name:      "forecast_cache_total",
			Help:      "Forecast cache lookups by result.",
		}, []string{"result"}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coastal_ew",
			Name:      "alerts_published_total",
			Help:      "High-risk alerts published to the alert topic.",
		}),
		AlertPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coastal_ew",
			Name:      "alert_publish_errors_total",
			Help:      "Failed attempts to publish high-risk alerts.",
		}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentDuration,
		m.PredictionErrors,
		m.ModelsReady,
		m.UpstreamRequests,
		m.ForecastCache,
		m.AlertsPublished,
		m.AlertPublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "coastal_ew", Name: "assessments_total"}, []string{"mode", "level"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "coastal_ew", Name: "assessment_duration_seconds"}),
		PredictionErrors:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "coastal_ew", Name: "prediction_errors_total"}, []string{"model"}),
		ModelsReady:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "coastal_ew", Name: "models_ready"}),
		UpstreamRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "coastal_ew", Name: "upstream_requests_total"}, []string{"outcome"}),
		ForecastCache:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "coastal_ew", Name: "forecast_cache_total"}, []string{"result"}),
		AlertsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "coastal_ew", Name: "alerts_published_total"}),
		AlertPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "coastal_ew", Name: "alert_publish_errors_total"}),
	}
}
