package openweather

import (
	"time"

	"stormrisk/internal/types"
)

type mainBlock struct {
	Temp     float64 `json:"temp"`
	TempMin  float64 `json:"temp_min"`
	TempMax  float64 `json:"temp_max"`
	Pressure float64 `json:"pressure"`
	Humidity float64 `json:"humidity"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
}

type cloudsBlock struct {
	All float64 `json:"all"`
}

// rainBlock uses the API's numeric keys for accumulation windows.
type rainBlock struct {
	OneHour   float64 `json:"1h"`
	ThreeHour float64 `json:"3h"`
}

type weatherBlock struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// CurrentAPIResponse mirrors the /data/2.5/weather payload.
type CurrentAPIResponse struct {
	Main    mainBlock      `json:"main"`
	Wind    windBlock      `json:"wind"`
	Clouds  cloudsBlock    `json:"clouds"`
	Rain    rainBlock      `json:"rain"`
	Weather []weatherBlock `json:"weather"`
	Dt      int64          `json:"dt"`
	Name    string         `json:"name"`
}

// WeatherValues converts the payload to the internal record. Precipitation
// prefers the 1h accumulation, falling back to 3h.
func (r *CurrentAPIResponse) WeatherValues() types.WeatherValues {
	precip := r.Rain.OneHour
	if precip == 0 {
		precip = r.Rain.ThreeHour
	}

	description := ""
	if len(r.Weather) > 0 {
		description = r.Weather[0].Description
	}

	return types.WeatherValues{
		Temperature:      r.Main.Temp,
		TempMin:          r.Main.TempMin,
		TempMax:          r.Main.TempMax,
		Humidity:         r.Main.Humidity,
		Pressure:         r.Main.Pressure,
		WindSpeed:        r.Wind.Speed,
		Precipitation:    precip,
		Clouds:           r.Clouds.All,
		SpecificHumidity: types.ApproxSpecificHumidity(r.Main.Humidity),
		Radiation:        types.DefaultRadiation,
		Description:      description,
		DataSource:       "openweather_current",
		Confidence:       0.95,
		ForecastTime:     time.Unix(r.Dt, 0).UTC(),
	}
}

// ForecastEntry is one 3-hourly sample from the /data/2.5/forecast list.
type ForecastEntry struct {
	Dt      int64          `json:"dt"`
	Main    mainBlock      `json:"main"`
	Wind    windBlock      `json:"wind"`
	Clouds  cloudsBlock    `json:"clouds"`
	Rain    rainBlock      `json:"rain"`
	Weather []weatherBlock `json:"weather"`
	DtTxt   string         `json:"dt_txt"`
}

// Time returns the sample timestamp in UTC.
func (e ForecastEntry) Time() time.Time {
	return time.Unix(e.Dt, 0).UTC()
}

// WeatherValues converts one forecast sample to the internal record.
func (e ForecastEntry) WeatherValues() types.WeatherValues {
	description := ""
	if len(e.Weather) > 0 {
		description = e.Weather[0].Description
	}

	return types.WeatherValues{
		Temperature:      e.Main.Temp,
		TempMin:          e.Main.TempMin,
		TempMax:          e.Main.TempMax,
		Humidity:         e.Main.Humidity,
		Pressure:         e.Main.Pressure,
		WindSpeed:        e.Wind.Speed,
		Precipitation:    e.Rain.ThreeHour,
		Clouds:           e.Clouds.All,
		SpecificHumidity: types.ApproxSpecificHumidity(e.Main.Humidity),
		Radiation:        types.DefaultRadiation,
		Description:      description,
		DataSource:       "openweather_forecast",
		Confidence:       0.85,
		ForecastTime:     e.Time(),
	}
}

// ForecastAPIResponse mirrors the /data/2.5/forecast payload.
type ForecastAPIResponse struct {
	Cnt  int             `json:"cnt"`
	List []ForecastEntry `json:"list"`
}

// Nearest returns the sample closest in time to target, false when the list
// is empty.
func (r *ForecastAPIResponse) Nearest(target time.Time) (ForecastEntry, bool) {
	if len(r.List) == 0 {
		return ForecastEntry{}, false
	}

	best := r.List[0]
	bestDelta := absDuration(best.Time().Sub(target))
	for _, entry := range r.List[1:] {
		if delta := absDuration(entry.Time().Sub(target)); delta < bestDelta {
			best, bestDelta = entry, delta
		}
	}
	return best, true
}

// DailySummary aggregates one calendar day of 3-hourly forecast samples.
type DailySummary struct {
	Date               string     `json:"date"`
	Temperature        types.Stat `json:"temperature"`
	HumidityAvg        float64    `json:"humidity_avg"`
	WindSpeedAvg       float64    `json:"wind_speed_avg"`
	PrecipitationTotal float64    `json:"precipitation_total"`
	Description        string     `json:"description"`
}

// DailySummaries rolls the 3-hourly list up into at most maxDays calendar
// days, in date order.
func (r *ForecastAPIResponse) DailySummaries(maxDays int) []DailySummary {
	type accumulator struct {
		temps       []float64
		humidity    float64
		wind        float64
		precip      float64
		samples     int
		description string
	}

	byDay := make(map[string]*accumulator)
	var order []string
	for _, entry := range r.List {
		key := entry.Time().Format("2006-01-02")
		acc, ok := byDay[key]
		if !ok {
			acc = &accumulator{}
			if len(entry.Weather) > 0 {
				acc.description = entry.Weather[0].Description
			}
			byDay[key] = acc
			order = append(order, key)
		}
		acc.temps = append(acc.temps, entry.Main.Temp)
		acc.humidity += entry.Main.Humidity
		acc.wind += entry.Wind.Speed
		acc.precip += entry.Rain.ThreeHour
		acc.samples++
	}

	if len(order) > maxDays {
		order = order[:maxDays]
	}

	out := make([]DailySummary, 0, len(order))
	for _, key := range order {
		acc := byDay[key]
		stat := types.Stat{Min: acc.temps[0], Max: acc.temps[0]}
		for _, t := range acc.temps {
			stat.Avg += t
			if t < stat.Min {
				stat.Min = t
			}
			if t > stat.Max {
				stat.Max = t
			}
		}
		stat.Avg /= float64(len(acc.temps))

		out = append(out, DailySummary{
			Date:               key,
			Temperature:        stat,
			HumidityAvg:        acc.humidity / float64(acc.samples),
			WindSpeedAvg:       acc.wind / float64(acc.samples),
			PrecipitationTotal: acc.precip,
			Description:        acc.description,
		})
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
