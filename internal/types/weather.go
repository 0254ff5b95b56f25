package types

import "time"

// WeatherValues is the common currency between the source router, the feature
// pipeline, and the risk blender. Exactly one record reaches the blender per
// request, and it always carries a non-empty DataSource label so degraded
// responses stay observable.
type WeatherValues struct {
	Temperature   float64 `json:"temperature"`
	TempMin       float64 `json:"temp_min"`
	TempMax       float64 `json:"temp_max"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
	Precipitation float64 `json:"precipitation"`
	Pressure      float64 `json:"pressure"`
	Clouds        float64 `json:"clouds"`

	// Derived model inputs not reported by every provider.
	SpecificHumidity float64 `json:"specific_humidity"`
	Radiation        float64 `json:"radiation"`

	Description string `json:"description,omitempty"`

	// DataSource discloses provenance: live weather, provider forecast,
	// climate pattern synthesis, or historical baseline.
	DataSource string  `json:"data_source"`
	Confidence float64 `json:"confidence,omitempty"`

	// ExtremeRisk is only set on pattern-synthesis paths, where the region
	// tables carry base extreme-condition rates. When present it feeds the
	// heuristic risk path directly.
	ExtremeRisk RiskProfile `json:"extreme_weather_risk,omitempty"`

	// ForecastTime is the timestamp of the provider sample this record came
	// from, when one exists.
	ForecastTime time.Time `json:"forecast_time,omitzero"`
}

// DefaultRadiation substitutes for surface radiation, which no live provider
// reports.
const DefaultRadiation = 200.0

// ApproxSpecificHumidity derives a specific-humidity estimate from relative
// humidity, matching the approximation the model was trained against.
func ApproxSpecificHumidity(relativeHumidity float64) float64 {
	return relativeHumidity / 100 * 10
}

// Stat is an {avg, min, max} summary for one weather field.
type Stat struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SeasonalPattern is one month-offset block of a climate pattern document:
// field distributions plus base extreme-risk rates. Loaded once at startup
// and immutable for the process lifetime.
type SeasonalPattern struct {
	Temperature   Stat        `json:"temperature"`
	Humidity      Stat        `json:"humidity"`
	Precipitation Stat        `json:"precipitation"`
	WindSpeed     Stat        `json:"wind_speed"`
	ExtremeRisk   RiskProfile `json:"extreme_weather_risk"`
}
