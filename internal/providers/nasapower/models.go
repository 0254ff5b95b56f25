package nasapower

import (
	"fmt"
	"sort"
	"time"

	"stormrisk/internal/types"
)

// missingValue is POWER's fill value for days the archive has not processed
// yet. Filled entries read as zero in the assembled series.
const missingValue = -999.0

// APIResponse mirrors the daily point payload. Each parameter maps YYYYMMDD
// date keys to values.
type APIResponse struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

// Series flattens the date-keyed parameter maps into a date-sorted run of
// daily observations.
func (r *APIResponse) Series() (types.HistoricalSeries, error) {
	dates := make(map[string]struct{})
	for _, byDate := range r.Properties.Parameter {
		for key := range byDate {
			dates[key] = struct{}{}
		}
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("payload contains no observations")
	}

	keys := make([]string, 0, len(dates))
	for key := range dates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := make(types.HistoricalSeries, 0, len(keys))
	for _, key := range keys {
		date, err := time.ParseInLocation(dateLayout, key, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("bad date key %q: %w", key, err)
		}
		series = append(series, types.DailyObservation{
			Date:        date,
			Temperature: r.value("T2M", key),
			TempMax:     r.value("T2M_MAX", key),
			TempMin:     r.value("T2M_MIN", key),
			Precip:      r.value("PRECTOTCORR", key),
			WindSpeed:   r.value("WS2M", key),
			Humidity:    r.value("RH2M", key),
			Pressure:    r.value("PS", key),
			CloudAmount: r.value("CLOUD_AMT", key),
		})
	}
	return series, nil
}

func (r *APIResponse) value(parameter, dateKey string) float64 {
	v, ok := r.Properties.Parameter[parameter][dateKey]
	if !ok || v == missingValue {
		return 0
	}
	return v
}
