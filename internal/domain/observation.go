package domain

// Defaults applied when an upstream reading omits a field.
const (
	DefaultPressureHPa   = 1013.25
	DefaultWindSpeedMPS  = 0.0
	DefaultWindDirDeg    = 0.0
	DefaultHumidityPct   = 50.0
	DefaultTemperatureC  = 15.0
)

// RawObservation is the wire form of a weather reading. Pointer fields
// distinguish absent values from zeroes so defaults replace only what the
// provider actually omitted.
type RawObservation struct {
	PressureHPa  *float64 `json:"pressure_hpa"`
	WindSpeedMPS *float64 `json:"wind_speed_mps"`
	WindDirDeg   *float64 `json:"wind_direction_deg"`
	HumidityPct  *float64 `json:"humidity_pct"`
	TemperatureC *float64 `json:"temperature_c"`
}

// Normalize fills absent fields with the documented defaults.
func (r RawObservation) Normalize() WeatherObservation {
	return WeatherObservation{
		PressureHPa:  floatOrDefault(r.PressureHPa, DefaultPressureHPa),
		WindSpeedMPS: floatOrDefault(r.WindSpeedMPS, DefaultWindSpeedMPS),
		WindDirDeg:   floatOrDefault(r.WindDirDeg, DefaultWindDirDeg),
		HumidityPct:  floatOrDefault(r.HumidityPct, DefaultHumidityPct),
		TemperatureC: floatOrDefault(r.TemperatureC, DefaultTemperatureC),
	}
}

// WeatherObservation is one normalized reading, immutable once constructed.
// Wind direction is degrees clockwise from north, conceptually [0, 360).
type WeatherObservation struct {
	PressureHPa  float64 `json:"pressure_hpa"`
	WindSpeedMPS float64 `json:"wind_speed_mps"`
	WindDirDeg   float64 `json:"wind_direction_deg"`
	HumidityPct  float64 `json:"humidity_pct"`
	TemperatureC float64 `json:"temperature_c"`
}

// DefaultObservation returns a reading with every field at its default.
func DefaultObservation() WeatherObservation {
	return RawObservation{}.Normalize()
}

func floatOrDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
