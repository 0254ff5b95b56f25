// Package routing selects the upstream source class for a prediction request
// by lead time and owns the long-range baseline cache.
package routing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"stormrisk/internal/climate"
	"stormrisk/internal/observability"
	"stormrisk/internal/providers/openweather"
	"stormrisk/internal/types"
)

// Path names a source-selection branch of the router.
type Path string

const (
	PathCurrent   Path = "current"
	PathForecast  Path = "forecast"
	PathBaseline  Path = "baseline"
	PathSynthesis Path = "synthesis"
)

// Short-range forecasts cover at most five days ahead.
const forecastHorizonDays = 5

// baselineWindowDays is the length of the historical window averaged into a
// monthly baseline. The window ends on day 15 of the target month.
const baselineWindowDays = 30

// WeatherProvider is the live-conditions and short-range forecast upstream.
type WeatherProvider interface {
	Current(ctx context.Context, coord types.Coordinate) (*openweather.CurrentAPIResponse, error)
	Forecast(ctx context.Context, coord types.Coordinate) (*openweather.ForecastAPIResponse, error)
}

// HistoryProvider is the daily historical-archive upstream.
type HistoryProvider interface {
	History(ctx context.Context, coord types.Coordinate, start, end time.Time) (types.HistoricalSeries, error)
}

// Result is the router's output: exactly one weather record, plus the
// historical series on paths that fetched one.
type Result struct {
	Record   types.WeatherValues
	Series   types.HistoricalSeries
	Path     Path
	LeadDays int
}

// Router walks the lead-time state machine. Fallbacks are one-directional: a
// failed path degrades to a cheaper source and never retries upward.
type Router struct {
	weather HistoryWeatherDeps
	synth   *climate.Synthesizer
	cache   *BaselineCache

	referenceYear int
	historyDays   int
	callTimeout   time.Duration

	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
}

// HistoryWeatherDeps bundles the two upstream providers.
type HistoryWeatherDeps struct {
	Live    WeatherProvider
	History HistoryProvider
}

// NewRouter creates a router. referenceYear anchors baseline history windows
// to a year the archive has fully processed. historyDays sets how far back
// the long-range path fetches daily observations for feature engineering;
// the baseline mean always reduces the trailing 30 days of that fetch.
func NewRouter(deps HistoryWeatherDeps, synth *climate.Synthesizer, cache *BaselineCache, referenceYear, historyDays int, callTimeout time.Duration, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Router {
	if historyDays < baselineWindowDays {
		historyDays = baselineWindowDays
	}
	return &Router{
		weather:       deps,
		synth:         synth,
		cache:         cache,
		referenceYear: referenceYear,
		historyDays:   historyDays,
		callTimeout:   callTimeout,
		clock:         clock,
		metrics:       metrics,
		logger:        logger,
	}
}

// LeadDays returns the calendar-day distance from now to the target date.
func (r *Router) LeadDays(target time.Time) int {
	now := r.clock.Now().UTC()
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(targetDay.Sub(nowDay).Hours() / 24)
}

// Route resolves the weather record for a target date. An error is returned
// only when the selected path and every fallback behind it failed.
func (r *Router) Route(ctx context.Context, coord types.Coordinate, target time.Time) (Result, error) {
	lead := r.LeadDays(target)

	switch {
	case lead <= 0:
		r.metrics.RoutesTotal.WithLabelValues(string(PathCurrent)).Inc()
		record, err := r.current(ctx, coord)
		if err != nil {
			return Result{}, err
		}
		return Result{Record: record, Path: PathCurrent, LeadDays: lead}, nil

	case lead <= forecastHorizonDays:
		r.metrics.RoutesTotal.WithLabelValues(string(PathForecast)).Inc()
		record, err := r.forecast(ctx, coord, target)
		if err == nil {
			return Result{Record: record, Path: PathForecast, LeadDays: lead}, nil
		}
		r.logger.Warn("forecast path failed, synthesizing from climate patterns", "error", err)
		r.metrics.FallbacksTotal.WithLabelValues(string(PathForecast), string(PathSynthesis)).Inc()
		offset := climate.OffsetBetween(r.clock.Now().UTC(), target)
		return Result{Record: r.synth.Synthesize(coord, offset), Path: PathSynthesis, LeadDays: lead}, nil

	default:
		r.metrics.RoutesTotal.WithLabelValues(string(PathBaseline)).Inc()
		result, err := r.baseline(ctx, coord, target)
		if err == nil {
			result.LeadDays = lead
			return result, nil
		}
		r.logger.Warn("baseline path failed, degrading to current conditions", "error", err)
		r.metrics.FallbacksTotal.WithLabelValues(string(PathBaseline), string(PathCurrent)).Inc()
		record, currentErr := r.current(ctx, coord)
		if currentErr != nil {
			return Result{}, fmt.Errorf("baseline and current fallback both failed: %w", currentErr)
		}
		return Result{Record: record, Path: PathCurrent, LeadDays: lead}, nil
	}
}

func (r *Router) current(ctx context.Context, coord types.Coordinate) (types.WeatherValues, error) {
	ctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	start := r.clock.Now()
	resp, err := r.weather.Live.Current(ctx, coord)
	r.metrics.ProviderCalls.WithLabelValues("openweather").Observe(r.clock.Since(start).Seconds())
	if err != nil {
		return types.WeatherValues{}, err
	}
	return resp.WeatherValues(), nil
}

func (r *Router) forecast(ctx context.Context, coord types.Coordinate, target time.Time) (types.WeatherValues, error) {
	ctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	start := r.clock.Now()
	resp, err := r.weather.Live.Forecast(ctx, coord)
	r.metrics.ProviderCalls.WithLabelValues("openweather").Observe(r.clock.Since(start).Seconds())
	if err != nil {
		return types.WeatherValues{}, err
	}

	entry, ok := resp.Nearest(target)
	if !ok {
		return types.WeatherValues{}, fmt.Errorf("%w: forecast returned no samples", types.ErrUpstreamUnavailable)
	}
	return entry.WeatherValues(), nil
}

func (r *Router) baseline(ctx context.Context, coord types.Coordinate, target time.Time) (Result, error) {
	month := target.Month()

	if record, ok := r.cache.Get(coord, month); ok {
		r.metrics.BaselineCache.WithLabelValues("hit").Inc()
		r.logger.Debug("baseline cache hit", "month", int(month))
		return Result{Record: record, Path: PathBaseline}, nil
	}
	r.metrics.BaselineCache.WithLabelValues("miss").Inc()

	// The fetch ends mid-month in the reference year and reaches back far
	// enough for the feature pipeline's lags and rolling windows. The
	// baseline mean only reduces the trailing 30 days.
	end := time.Date(r.referenceYear, month, 15, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -(r.historyDays - 1))

	ctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	callStart := r.clock.Now()
	series, err := r.weather.History.History(ctx, coord, start, end)
	r.metrics.ProviderCalls.WithLabelValues("nasapower").Observe(r.clock.Since(callStart).Seconds())
	if err != nil {
		return Result{}, err
	}
	if len(series) == 0 {
		return Result{}, fmt.Errorf("%w: history returned no observations", types.ErrUpstreamUnavailable)
	}

	window := series.Between(end.AddDate(0, 0, -(baselineWindowDays-1)), end.AddDate(0, 0, 1))
	if len(window) == 0 {
		window = series
	}
	record := baselineFromSeries(window, month)
	r.cache.Put(coord, month, record)
	return Result{Record: record, Series: series, Path: PathBaseline}, nil
}

// baselineFromSeries reduces a historical window to field-wise means.
func baselineFromSeries(series types.HistoricalSeries, month time.Month) types.WeatherValues {
	var temp, tempMax, tempMin, precip, wind, humidity, pressure, clouds float64
	for _, obs := range series {
		temp += obs.Temperature
		tempMax += obs.TempMax
		tempMin += obs.TempMin
		precip += obs.Precip
		wind += obs.WindSpeed
		humidity += obs.Humidity
		pressure += obs.Pressure
		clouds += obs.CloudAmount
	}
	n := float64(len(series))

	meanHumidity := humidity / n
	return types.WeatherValues{
		Temperature:      temp / n,
		TempMax:          tempMax / n,
		TempMin:          tempMin / n,
		Humidity:         meanHumidity,
		WindSpeed:        wind / n,
		Precipitation:    precip / n,
		Pressure:         pressure / n,
		Clouds:           clouds / n,
		SpecificHumidity: types.ApproxSpecificHumidity(meanHumidity),
		Radiation:        types.DefaultRadiation,
		DataSource:       fmt.Sprintf("nasa_power_baseline_month_%d", int(month)),
		Confidence:       0.8,
	}
}
