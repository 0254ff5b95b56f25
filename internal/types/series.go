package types

import "time"

// DailyObservation is one day of the historical record, using the upstream
// archive's column names so feature names stay aligned with the trained model.
type DailyObservation struct {
	Date        time.Time
	Temperature float64 // T2M
	TempMax     float64 // T2M_MAX
	TempMin     float64 // T2M_MIN
	Precip      float64 // PRECTOTCORR
	WindSpeed   float64 // WS2M
	Humidity    float64 // RH2M
	Pressure    float64 // PS
	CloudAmount float64 // CLOUD_AMT
}

// HistoricalSeries is an ordered-by-date run of daily observations for one
// coordinate. It lives for a single request only.
type HistoricalSeries []DailyObservation

// At returns the observation for the given calendar day, if present.
func (s HistoricalSeries) At(date time.Time) (DailyObservation, bool) {
	y, m, d := date.Date()
	for _, obs := range s {
		oy, om, od := obs.Date.Date()
		if oy == y && om == m && od == d {
			return obs, true
		}
	}
	return DailyObservation{}, false
}

// Between returns observations with from <= date < to, preserving order.
func (s HistoricalSeries) Between(from, to time.Time) HistoricalSeries {
	var out HistoricalSeries
	for _, obs := range s {
		if !obs.Date.Before(from) && obs.Date.Before(to) {
			out = append(out, obs)
		}
	}
	return out
}
