// Package features derives the model's engineered inputs from a historical
// series and a target date. Everything here is a pure function: no I/O, and
// missing data degrades to zero-valued features rather than errors.
package features

import (
	"fmt"
	"math"
	"time"

	"stormrisk/internal/types"
)

// Vector is a named feature set. Consumers treat missing names as 0.0.
type Vector map[string]float64

// Merge copies other's entries into v, overwriting duplicates.
func (v Vector) Merge(other Vector) {
	for name, value := range other {
		v[name] = value
	}
}

// Columns are the historical archive's daily fields, in the order the
// engineered feature names reference them.
var Columns = []string{"T2M", "T2M_MAX", "T2M_MIN", "PRECTOTCORR", "WS2M", "RH2M", "PS", "CLOUD_AMT"}

func columnValue(obs types.DailyObservation, column string) float64 {
	switch column {
	case "T2M":
		return obs.Temperature
	case "T2M_MAX":
		return obs.TempMax
	case "T2M_MIN":
		return obs.TempMin
	case "PRECTOTCORR":
		return obs.Precip
	case "WS2M":
		return obs.WindSpeed
	case "RH2M":
		return obs.Humidity
	case "PS":
		return obs.Pressure
	case "CLOUD_AMT":
		return obs.CloudAmount
	}
	return 0
}

// Builder derives engineered features using configured lag offsets and
// rolling-window lengths.
type Builder struct {
	Lags    []int
	Windows []int
}

// NewBuilder creates a builder with the given lag offsets and window lengths,
// both in days.
func NewBuilder(lags, windows []int) *Builder {
	return &Builder{Lags: lags, Windows: windows}
}

// Build derives the complete feature set for a target date: temporal
// encodings, the target day's raw columns, lags, rolling statistics, trends,
// and interactions.
func (b *Builder) Build(series types.HistoricalSeries, target time.Time) Vector {
	v := Temporal(target)

	if obs, ok := series.At(target); ok {
		for _, col := range Columns {
			v[col] = columnValue(obs, col)
		}
	}

	v.Merge(b.Lag(series, target))
	v.Merge(b.Rolling(series, target))
	v.Merge(Trend(series, target))
	v.Merge(Interaction(series, target))
	return v
}

// Temporal derives calendar features from the target date alone. Cyclical
// sine/cosine encodings smooth over the year and month boundaries.
func Temporal(target time.Time) Vector {
	dayOfYear := float64(target.YearDay())
	month := float64(target.Month())
	dayOfWeek := float64(mondayIndexed(target.Weekday()))

	isWeekend := 0.0
	if dayOfWeek >= 5 {
		isWeekend = 1
	}

	return Vector{
		"day_of_year": dayOfYear,
		"month":       month,
		"day_of_week": dayOfWeek,
		"is_weekend":  isWeekend,
		"year":        float64(target.Year()),
		"season":      float64((int(month)%12 + 3) / 3),

		"day_of_year_sin": math.Sin(2 * math.Pi * dayOfYear / 365.25),
		"day_of_year_cos": math.Cos(2 * math.Pi * dayOfYear / 365.25),
		"month_sin":       math.Sin(2 * math.Pi * month / 12),
		"month_cos":       math.Cos(2 * math.Pi * month / 12),
	}
}

// mondayIndexed maps Go's Sunday-first weekday onto Monday=0..Sunday=6, the
// convention the feature names were trained with.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Lag returns each column's value exactly lag days before the target date,
// 0 when that day is absent from the series.
func (b *Builder) Lag(series types.HistoricalSeries, target time.Time) Vector {
	v := make(Vector, len(Columns)*len(b.Lags))
	for _, col := range Columns {
		for _, lag := range b.Lags {
			name := fmt.Sprintf("%s_lag_%d", col, lag)
			if obs, ok := series.At(target.AddDate(0, 0, -lag)); ok {
				v[name] = columnValue(obs, col)
			} else {
				v[name] = 0
			}
		}
	}
	return v
}

// Rolling returns mean/std/max/min per column over each half-open window
// [target-window, target). Empty windows yield all zeros; std is 0 below two
// observations.
func (b *Builder) Rolling(series types.HistoricalSeries, target time.Time) Vector {
	v := make(Vector, len(Columns)*len(b.Windows)*4)
	for _, window := range b.Windows {
		data := series.Between(target.AddDate(0, 0, -window), target)
		for _, col := range Columns {
			mean, std, max, min := windowStats(data, col)
			v[fmt.Sprintf("%s_rolling_mean_%d", col, window)] = mean
			v[fmt.Sprintf("%s_rolling_std_%d", col, window)] = std
			v[fmt.Sprintf("%s_rolling_max_%d", col, window)] = max
			v[fmt.Sprintf("%s_rolling_min_%d", col, window)] = min
		}
	}
	return v
}

// windowStats computes sample statistics over one column of a window.
func windowStats(data types.HistoricalSeries, column string) (mean, std, max, min float64) {
	if len(data) == 0 {
		return 0, 0, 0, 0
	}

	max = math.Inf(-1)
	min = math.Inf(1)
	for _, obs := range data {
		value := columnValue(obs, column)
		mean += value
		if value > max {
			max = value
		}
		if value < min {
			min = value
		}
	}
	mean /= float64(len(data))

	// Sample standard deviation is undefined below n=2.
	if len(data) > 1 {
		var sum float64
		for _, obs := range data {
			d := columnValue(obs, column) - mean
			sum += d * d
		}
		std = math.Sqrt(sum / float64(len(data)-1))
	}
	return mean, std, max, min
}

// Trend returns 1-day and 7-day deltas per column, plus a zero-guarded 1-day
// percent change. The target day's own row must be present; without it no
// trend features are emitted.
func Trend(series types.HistoricalSeries, target time.Time) Vector {
	targetObs, ok := series.At(target)
	if !ok {
		return Vector{}
	}

	v := make(Vector, len(Columns)*3)
	for _, col := range Columns {
		current := columnValue(targetObs, col)

		if prev, ok := series.At(target.AddDate(0, 0, -1)); ok {
			prevValue := columnValue(prev, col)
			v[col+"_change_1d"] = current - prevValue
			if prevValue != 0 {
				v[col+"_pct_change_1d"] = (current - prevValue) / prevValue
			} else {
				v[col+"_pct_change_1d"] = 0
			}
		} else {
			v[col+"_change_1d"] = 0
			v[col+"_pct_change_1d"] = 0
		}

		if prev, ok := series.At(target.AddDate(0, 0, -7)); ok {
			v[col+"_change_7d"] = current - columnValue(prev, col)
		} else {
			v[col+"_change_7d"] = 0
		}
	}
	return v
}

// Interaction returns cross-field products and the heat index for the target
// day. The formula constants are calibrated; they must not be re-derived.
func Interaction(series types.HistoricalSeries, target time.Time) Vector {
	obs, ok := series.At(target)
	if !ok {
		return Vector{}
	}

	return Vector{
		"temp_humidity_interaction": obs.Temperature * obs.Humidity,
		"wind_precip_interaction":   obs.WindSpeed * obs.Precip,
		"temp_range":                obs.TempMax - obs.TempMin,
		"heat_index":                HeatIndex(obs.Temperature, obs.Humidity),
	}
}

// HeatIndex is the empirical perceived-temperature approximation the model
// and the risk thresholds were both calibrated against.
func HeatIndex(temperature, humidity float64) float64 {
	return temperature + 0.5*(temperature+61.0+(temperature-68.0)*1.2+humidity*0.094)
}
