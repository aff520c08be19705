// Package domain models coastal flood-risk assessment over time-ordered
// weather observations.
//
// # Flood-Risk Feature
//
// Each weather observation reduces to one scalar feature:
//
//	pressure_factor = (1013.25 - pressure_hpa) / 20
//	wind_factor     = wind_speed_mps / 10
//	humidity_factor = humidity_pct / 100
//	raw             = pressure_factor + wind_factor + humidity_factor + temperature_c/50
//	feature         = max(0, raw*3 + 5)
//
// Lower atmospheric pressure, higher wind speed, and higher humidity are
// storm-surge precursors. The offset of 5 and floor of 0 keep values in a
// roughly 0-15 band centered near a "normal" baseline of 5 — the scale both
// pre-trained models were fitted on. The formula must not change without
// retraining; see [ExtractFeature].
//
// A wind-pressure term (wind_speed * sin(wind_direction)) is part of the
// reference feature definition but does not contribute to the composite
// score. It is computed for parity with the trained artifacts.
//
// # Field Defaults
//
// Upstream readings can omit fields. Absent values fall back to:
//
//	pressure_hpa        1013.25 (standard atmosphere)
//	wind_speed_mps      0
//	wind_direction_deg  0
//	humidity_pct        50
//	temperature_c       15
//
// A reading built purely from defaults scores 7.4. Readings carrying
// non-finite values degrade to the safe default feature of 5.0 — the single
// documented place where malformed input becomes a default instead of an
// error.
//
// # Windows and Model Asymmetry
//
// The forecaster consumes the full fixed-length window as one sample of N
// time steps with one channel. The anomaly scorer consumes only the window's
// most recent value: it was fitted on a one-dimensional distribution of
// recent features, not on sequences. Both contracts are fixed by training.
//
// # Risk Classification
//
// Ordered first-match rules combine the two model outputs:
//
//	anomalous verdict → HIGH, "anomaly detected: unusual pattern"
//	forecast > high   → HIGH, "flood risk alert: high forecast water level"
//	forecast > medium → MEDIUM, no alert
//	otherwise         → LOW, no alert
//
// An anomalous verdict outranks any forecast magnitude. Thresholds are
// deployment configuration; the reference defaults are high=8.0, medium=6.5.
package domain
