package domain

import "time"

// Verdict is the anomaly scorer's binary output.
type Verdict int

const (
	VerdictNormal Verdict = iota
	VerdictAnomalous
)

func (v Verdict) String() string {
	if v == VerdictAnomalous {
		return "anomalous"
	}
	return "normal"
}

// RiskLevel is the final discrete risk verdict.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Thresholds are the forecast cut points for the classifier. Deployment
// configuration, not constants; see DefaultThresholds.
type Thresholds struct {
	High   float64
	Medium float64
}

// DefaultThresholds is the deployed reference profile.
var DefaultThresholds = Thresholds{High: 8.0, Medium: 6.5}

// Alert messages attached to HIGH assessments.
const (
	AlertAnomaly      = "anomaly detected: unusual pattern"
	AlertHighForecast = "flood risk alert: high forecast water level"
)

// Classify combines a forecast and an anomaly verdict into a risk level and
// alert message. Rules are evaluated in order, first match wins; an anomalous
// verdict takes priority over any forecast magnitude. Pure and total.
func Classify(forecast float64, verdict Verdict, t Thresholds) (RiskLevel, string) {
	switch {
	case verdict == VerdictAnomalous:
		return RiskHigh, AlertAnomaly
	case forecast > t.High:
		return RiskHigh, AlertHighForecast
	case forecast > t.Medium:
		return RiskMedium, ""
	default:
		return RiskLow, ""
	}
}

// RiskAssessment is the output record of one pipeline invocation. Created
// fresh per invocation, never mutated afterward, not persisted by the core.
type RiskAssessment struct {
	ForecastValue float64      `json:"forecast_value"`
	IsAnomaly     bool         `json:"is_anomaly"`
	RiskLevel     RiskLevel    `json:"risk_level"`
	AlertMessage  string       `json:"alert_message,omitempty"`
	ProducedAt    time.Time    `json:"produced_at"`

	// WindowStats is set only on the live-collection path.
	WindowStats *WindowStats `json:"window_stats,omitempty"`
}
