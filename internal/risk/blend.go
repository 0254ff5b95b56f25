// Package risk converts model anomalies and weather records into the five
// extreme-condition probabilities and the ordinal risk level.
package risk

import (
	"math"

	"stormrisk/internal/features"
	"stormrisk/internal/types"
)

// Blend applies the hybrid trust policy to a model output and its source
// record, returning the adjusted record and the model-backed probabilities.
//
// The temperature anomaly is ignored: the frozen model's temperature fit is
// too weak to trust (R2 near 0.32), so the source temperature stands. The
// precipitation anomaly is applied multiplicatively (R2 near 0.79) and the
// adjusted value replaces the record's precipitation before scoring.
func Blend(anomaly types.AnomalyOutput, record types.WeatherValues) (types.WeatherValues, types.RiskProfile) {
	adjustedTemp := record.Temperature
	adjustedPrecip := anomaly.BasePrecipitation * (1 + anomaly.PrecipitationAnomaly)

	record.Precipitation = adjustedPrecip

	heatIndex := features.HeatIndex(adjustedTemp, record.Humidity)

	profile := types.RiskProfile{
		types.VeryHot:           hotProbability(adjustedTemp, anomaly.TemperatureAnomaly),
		types.VeryCold:          coldProbability(adjustedTemp, anomaly.TemperatureAnomaly),
		types.VeryWindy:         windyProbability(record.WindSpeed),
		types.VeryWet:           wetProbability(adjustedPrecip, anomaly.PrecipitationAnomaly),
		types.VeryUncomfortable: discomfortProbability(heatIndex, adjustedTemp, record.Humidity),
	}
	return record, profile
}

func hotProbability(temp, anomaly float64) float64 {
	prob := math.Max(0, (temp-35)/15)
	if anomaly > 0.3 {
		prob += math.Min(0.3, anomaly)
	}
	return clamp01(prob)
}

func coldProbability(temp, anomaly float64) float64 {
	prob := math.Max(0, (5-temp)/15)
	if anomaly < -0.3 {
		prob += math.Min(0.3, math.Abs(anomaly))
	}
	return clamp01(prob)
}

func windyProbability(windSpeed float64) float64 {
	return clamp01(math.Max(0, (windSpeed-20)/30))
}

func wetProbability(precip, anomaly float64) float64 {
	prob := math.Max(0, precip/200)
	if anomaly > 0.5 {
		prob += math.Min(0.4, anomaly*0.5)
	}
	return clamp01(prob)
}

func discomfortProbability(heatIndex, temp, humidity float64) float64 {
	prob := math.Max(0, (heatIndex-40)/20)
	if temp > 30 && humidity > 70 {
		prob += 0.3
	}
	return clamp01(prob)
}

// heuristicCap bounds every heuristic-path probability, reflecting the lower
// confidence of a scoring pass with no model behind it.
const heuristicCap = 0.1

// Heuristic scores raw weather fields directly, used whenever no model
// output is available.
func Heuristic(record types.WeatherValues) types.RiskProfile {
	heatIndex := features.HeatIndex(record.Temperature, record.Humidity)

	return types.RiskProfile{
		types.VeryHot:           capped((record.Temperature - 35) / 50),
		types.VeryCold:          capped((5 - record.Temperature) / 50),
		types.VeryWindy:         capped((record.WindSpeed - 20) / 100),
		types.VeryWet:           capped(record.Precipitation / 500),
		types.VeryUncomfortable: capped(math.Abs(heatIndex-25) / 200),
	}
}

func capped(v float64) float64 {
	return math.Max(0, math.Min(heuristicCap, v))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
