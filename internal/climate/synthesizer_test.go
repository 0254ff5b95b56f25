package climate

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stormrisk/internal/types"
)

func newTestSynthesizer(t *testing.T) *Synthesizer {
	t.Helper()
	return NewSynthesizer(newTestStore(t), rand.New(rand.NewSource(1)), testLogger())
}

func mustCoord(t *testing.T, lat, lon float64) types.Coordinate {
	t.Helper()
	c, err := types.NewCoordinate(lat, lon)
	require.NoError(t, err)
	return c
}

func TestSynthesize_ContinentPathWins(t *testing.T) {
	s := newTestSynthesizer(t)

	got := s.Synthesize(mustCoord(t, 48.8, 2.3), 1)

	assert.Equal(t, "climate_pattern_continental", got.DataSource)

	v := locationVariation(mustCoord(t, 48.8, 2.3), continentVariationScale)
	assert.InDelta(t, 12+v*5, got.Temperature, 1e-9)
	assert.InDelta(t, 4+v*3, got.TempMin, 1e-9)
	assert.InDelta(t, 20+v*7, got.TempMax, 1e-9)
	assert.InDelta(t, 0.75+math.Abs(v)*0.15, got.Confidence, 1e-9)

	// Continent base rates are scaled down by 10 before clamping.
	assert.InDelta(t, 0.2/10+v*0.01, got.ExtremeRisk[types.VeryWet], 1e-9)
}

func TestSynthesize_HemisphereFallback(t *testing.T) {
	s := newTestSynthesizer(t)

	// Northern hemisphere point outside the Europe box and every fixed zone.
	got := s.Synthesize(mustCoord(t, 30, -25), 1)

	assert.Equal(t, "climate_pattern_hemispheric", got.DataSource)

	v := locationVariation(mustCoord(t, 30, -25), hemisphereVariationScale)
	assert.InDelta(t, 15+v*8, got.Temperature, 1e-9)
	assert.InDelta(t, 0.65+math.Abs(v)*0.2, got.Confidence, 1e-9)
}

func TestSynthesize_GlobalDefaults(t *testing.T) {
	s := newTestSynthesizer(t)

	// Southern hemisphere has no document in the test store.
	got := s.Synthesize(mustCoord(t, -30, -120), 1)

	assert.Equal(t, "climate_pattern_default", got.DataSource)
	assert.Equal(t, 0.50, got.Confidence)

	v := locationVariation(mustCoord(t, -30, -120), continentVariationScale)
	assert.InDelta(t, 20+v*5, got.Temperature, 1e-9)
	assert.InDelta(t, 100+v*20, got.Precipitation, 1e-9)
}

func TestSynthesize_IsDeterministic(t *testing.T) {
	s := newTestSynthesizer(t)
	c := mustCoord(t, 48.8, 2.3)

	first := s.Synthesize(c, 1)
	second := s.Synthesize(c, 1)
	assert.Equal(t, first, second)
}

func TestSynthesize_ClampBounds(t *testing.T) {
	s := newTestSynthesizer(t)

	// Sweep enough coordinates to exercise both variation extremes.
	for lat := -90.0; lat <= 90; lat += 10 {
		for lon := -180.0; lon <= 180; lon += 20 {
			got := s.Synthesize(mustCoord(t, lat, lon), 1)

			assert.GreaterOrEqual(t, got.Humidity, 10.0)
			assert.LessOrEqual(t, got.Humidity, 95.0)
			assert.GreaterOrEqual(t, got.WindSpeed, 1.0)
			assert.GreaterOrEqual(t, got.Precipitation, 0.0)
			assert.GreaterOrEqual(t, got.Clouds, 0.0)
			assert.LessOrEqual(t, got.Clouds, 100.0)
			for _, p := range got.ExtremeRisk {
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 0.1)
			}
		}
	}
}

func TestCurve_StaysWithinBounds(t *testing.T) {
	s := newTestSynthesizer(t)

	estimate := types.WeatherValues{Temperature: 20, TempMin: 14, TempMax: 27}
	start := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	curve := s.Curve(estimate, start, 30)
	require.Len(t, curve, 30)

	for i, daily := range curve {
		assert.GreaterOrEqual(t, daily.Temperature, estimate.TempMin)
		assert.LessOrEqual(t, daily.Temperature, estimate.TempMax)
		assert.Equal(t, start.AddDate(0, 0, i), daily.ForecastTime)
	}
}

func TestCurve_SeededRNGReproduces(t *testing.T) {
	store := newTestStore(t)
	estimate := types.WeatherValues{Temperature: 20, TempMin: 10, TempMax: 30}
	start := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	a := NewSynthesizer(store, rand.New(rand.NewSource(7)), testLogger()).Curve(estimate, start, 10)
	b := NewSynthesizer(store, rand.New(rand.NewSource(7)), testLogger()).Curve(estimate, start, 10)
	assert.Equal(t, a, b)
}
