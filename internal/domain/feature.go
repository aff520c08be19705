package domain

import "math"

// SafeDefaultFeature is returned when an observation carries non-finite
// values. A deliberate, narrowly-scoped degradation for noisy upstream data;
// everything else in the package reports errors instead of defaulting.
const SafeDefaultFeature = 5.0

// ExtractFeature reduces one observation to its flood-risk feature using the
// reference formula documented in the package comment. Total: it never fails,
// and its output is never negative.
func ExtractFeature(obs WeatherObservation) float64 {
	// Part of the reference feature definition; does not feed the composite
	// score. Kept for parity with the trained artifacts.
	windPressure := obs.WindSpeedMPS * math.Sin(obs.WindDirDeg*math.Pi/180)
	_ = windPressure

	pressureFactor := (DefaultPressureHPa - obs.PressureHPa) / 20
	windFactor := obs.WindSpeedMPS / 10
	humidityFactor := obs.HumidityPct / 100

	raw := pressureFactor + windFactor + humidityFactor + obs.TemperatureC/50
	feature := raw*3 + 5

	if math.IsNaN(feature) || math.IsInf(feature, 0) {
		return SafeDefaultFeature
	}
	return math.Max(0, feature)
}

// ExtractFeatures applies ExtractFeature elementwise, preserving input order.
func ExtractFeatures(observations []WeatherObservation) []float64 {
	features := make([]float64, len(observations))
	for i, obs := range observations {
		features[i] = ExtractFeature(obs)
	}
	return features
}
