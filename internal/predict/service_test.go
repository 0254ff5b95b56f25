package predict

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stormrisk/internal/climate"
	"stormrisk/internal/features"
	"stormrisk/internal/observability"
	"stormrisk/internal/providers/openweather"
	"stormrisk/internal/routing"
	"stormrisk/internal/types"
)

var now = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

type stubWeather struct {
	current     *openweather.CurrentAPIResponse
	currentErr  error
	forecastErr error
}

func (s *stubWeather) Current(context.Context, types.Coordinate) (*openweather.CurrentAPIResponse, error) {
	return s.current, s.currentErr
}

func (s *stubWeather) Forecast(context.Context, types.Coordinate) (*openweather.ForecastAPIResponse, error) {
	return nil, s.forecastErr
}

type stubHistory struct {
	series types.HistoricalSeries
	err    error
}

func (s *stubHistory) History(context.Context, types.Coordinate, time.Time, time.Time) (types.HistoricalSeries, error) {
	return s.series, s.err
}

type fakeModel struct {
	vector features.Vector
	out    types.AnomalyOutput
	err    error
	calls  int
}

func (f *fakeModel) Infer(_ context.Context, vector features.Vector, record types.WeatherValues) (types.AnomalyOutput, error) {
	f.calls++
	f.vector = vector
	if f.err != nil {
		return types.AnomalyOutput{}, f.err
	}
	out := f.out
	out.BaseTemperature = record.Temperature
	out.BasePrecipitation = record.Precipitation
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newService(t *testing.T, weather *stubWeather, history *stubHistory, anomalyModel AnomalyModel) Service {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "location_mapping.json"), []byte(`{"coordinate_regions": []}`), 0o644))

	logger := testLogger()
	store, err := climate.LoadStore(dir, logger)
	require.NoError(t, err)
	synth := climate.NewSynthesizer(store, rand.New(rand.NewSource(1)), logger)

	clock := clockwork.NewFakeClockAt(now)
	metrics := observability.NewMetricsForTesting()

	router := routing.NewRouter(
		routing.HistoryWeatherDeps{Live: weather, History: history},
		synth,
		routing.NewBaselineCache(),
		2024,
		60,
		10*time.Second,
		clock,
		metrics,
		logger,
	)
	builder := features.NewBuilder([]int{1, 7}, []int{3, 7})

	return NewService(router, builder, anomalyModel, clock, metrics, logger)
}

func testCoord(t *testing.T) types.Coordinate {
	t.Helper()
	c, err := types.NewCoordinate(40.7, -74.0)
	require.NoError(t, err)
	return c
}

func historySeries() types.HistoricalSeries {
	var series types.HistoricalSeries
	start := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		series = append(series, types.DailyObservation{
			Date:        start.AddDate(0, 0, i),
			Temperature: 18,
			Humidity:    55,
			WindSpeed:   6,
			Precip:      2,
		})
	}
	return series
}

func TestPredict_ModelPathBlendsPrecipitation(t *testing.T) {
	anomalyModel := &fakeModel{out: types.AnomalyOutput{TemperatureAnomaly: 0.1, PrecipitationAnomaly: 0.6}}
	svc := newService(t, &stubWeather{}, &stubHistory{series: historySeries()}, anomalyModel)

	target := now.AddDate(0, 0, 120)
	got, err := svc.Predict(context.Background(), testCoord(t), target)
	require.NoError(t, err)

	assert.Equal(t, "lstm_nasa_hybrid", got.DataSource)
	assert.Equal(t, 1, anomalyModel.calls)

	// Precipitation is adjusted by the anomaly; temperature stays baseline.
	assert.InDelta(t, 2.0*1.6, got.Weather.Precipitation, 1e-9)
	assert.InDelta(t, 18.0, got.Weather.Temperature, 1e-9)

	// The model vector merges record features with the series-derived set.
	assert.Contains(t, anomalyModel.vector, "T2M_scaled")
	assert.Contains(t, anomalyModel.vector, "T2M_rolling_mean_7")

	assert.Equal(t, types.RiskMinimal, got.RiskLevel)
	assert.Equal(t, 120, got.LeadDays)
	assert.Equal(t, target.Format("2006-01-02"), got.Date)
}

func TestPredict_ModelFailureFallsBackToHeuristics(t *testing.T) {
	anomalyModel := &fakeModel{err: types.ErrModelUnavailable}
	svc := newService(t, &stubWeather{}, &stubHistory{series: historySeries()}, anomalyModel)

	got, err := svc.Predict(context.Background(), testCoord(t), now.AddDate(0, 0, 60))
	require.NoError(t, err)

	assert.Equal(t, "heuristic", got.DataSource)
	for _, p := range got.Predictions {
		assert.LessOrEqual(t, p, 0.1)
	}
}

func TestPredict_NoModelUsesHeuristics(t *testing.T) {
	current := &openweather.CurrentAPIResponse{Dt: now.Unix()}
	current.Main.Temp = 21
	current.Main.Humidity = 60

	svc := newService(t, &stubWeather{current: current}, &stubHistory{}, nil)

	got, err := svc.Predict(context.Background(), testCoord(t), now.AddDate(0, 0, -1))
	require.NoError(t, err)

	assert.Equal(t, "heuristic", got.DataSource)
	assert.Equal(t, -1, got.LeadDays)
	assert.Equal(t, 21.0, got.Weather.Temperature)
}

func TestPredict_RegionRiskRecordBypassesModel(t *testing.T) {
	anomalyModel := &fakeModel{}
	// Forecast failure forces the synthesis path, whose records carry a
	// region-derived risk map.
	svc := newService(t, &stubWeather{forecastErr: errors.New("down")}, &stubHistory{}, anomalyModel)

	got, err := svc.Predict(context.Background(), testCoord(t), now.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.Zero(t, anomalyModel.calls)
	assert.Equal(t, "climate_pattern_default", got.DataSource)
	assert.NotEmpty(t, got.Predictions)
}

func TestPredict_RouterFailureSurfaces(t *testing.T) {
	weather := &stubWeather{currentErr: types.ErrUpstreamUnavailable}
	svc := newService(t, weather, &stubHistory{}, nil)

	_, err := svc.Predict(context.Background(), testCoord(t), now)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
}
