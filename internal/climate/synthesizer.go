package climate

import (
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"stormrisk/internal/region"
	"stormrisk/internal/types"
)

// Pattern precedence: a continent document wins over the hemisphere document,
// which wins over the global defaults. Every tier perturbs its base pattern
// with a deterministic location term so nearby points stay similar while
// distinct points differ.

const (
	continentVariationScale  = 0.1
	hemisphereVariationScale = 0.15
)

// Synthesizer produces weather estimates for dates beyond forecast range from
// the static pattern store.
type Synthesizer struct {
	store    *Store
	resolver *region.Resolver
	logger   *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthesizer creates a synthesizer over the store. The rng drives only the
// day-to-day noise in Curve; Synthesize itself is deterministic.
func NewSynthesizer(store *Store, rng *rand.Rand, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{
		store:    store,
		resolver: region.NewResolver(store.Regions()),
		logger:   logger,
		rng:      rng,
	}
}

// locationVariation spreads a base pattern across space. The same coordinate
// always yields the same value.
func locationVariation(c types.Coordinate, scale float64) float64 {
	return math.Sin(c.Latitude*math.Pi/180)*scale + math.Cos(c.Longitude*math.Pi/180)*scale
}

// Synthesize estimates conditions at the coordinate for the month offset,
// trying the continent document, then the hemisphere document, then the
// global defaults.
func (s *Synthesizer) Synthesize(c types.Coordinate, offset MonthOffset) types.WeatherValues {
	reg := s.resolver.Resolve(c)

	if pattern, ok := s.store.Pattern(reg.Continent, offset); ok {
		return s.fromContinent(c, pattern)
	}
	if pattern, ok := s.store.HemispherePattern(reg.Hemisphere, offset); ok {
		return s.fromHemisphere(c, pattern)
	}

	s.logger.Warn("no pattern document matched, using global defaults",
		"continent", reg.Continent,
		"hemisphere", reg.Hemisphere,
		"month_offset", int(offset),
	)
	return s.fromDefaults(c)
}

func (s *Synthesizer) fromContinent(c types.Coordinate, p types.SeasonalPattern) types.WeatherValues {
	v := locationVariation(c, continentVariationScale)

	risk := make(types.RiskProfile, len(p.ExtremeRisk))
	for condition, r := range p.ExtremeRisk {
		risk[condition] = clamp(r/10+v*0.01, 0, 0.1)
	}

	return types.WeatherValues{
		Temperature:   p.Temperature.Avg + v*5,
		TempMin:       p.Temperature.Min + v*3,
		TempMax:       p.Temperature.Max + v*7,
		Humidity:      clamp(p.Humidity.Avg+v*10, 10, 95),
		WindSpeed:     math.Max(1, p.WindSpeed.Avg+v*5),
		Precipitation: math.Max(0, p.Precipitation.Avg+v*20),
		Clouds:        clamp(60+v*20, 0, 100),
		ExtremeRisk:   risk,
		Confidence:    0.75 + math.Abs(v)*0.15,
		DataSource:    "climate_pattern_continental",
	}
}

func (s *Synthesizer) fromHemisphere(c types.Coordinate, p types.SeasonalPattern) types.WeatherValues {
	v := locationVariation(c, hemisphereVariationScale)

	risk := make(types.RiskProfile, len(p.ExtremeRisk))
	for condition, r := range p.ExtremeRisk {
		risk[condition] = clamp(r+v*0.015, 0, 0.1)
	}

	return types.WeatherValues{
		Temperature:   p.Temperature.Avg + v*8,
		TempMin:       p.Temperature.Min + v*5,
		TempMax:       p.Temperature.Max + v*10,
		Humidity:      clamp(p.Humidity.Avg+v*12, 10, 95),
		WindSpeed:     math.Max(1, p.WindSpeed.Avg+v*8),
		Precipitation: math.Max(0, p.Precipitation.Avg+v*30),
		Clouds:        clamp(50+v*25, 0, 100),
		ExtremeRisk:   risk,
		Confidence:    0.65 + math.Abs(v)*0.2,
		DataSource:    "climate_pattern_hemispheric",
	}
}

// Global defaults for coordinates no document covers.
var (
	defaultTemperature   = types.Stat{Avg: 20, Min: 10, Max: 30}
	defaultHumidity      = types.Stat{Avg: 65, Min: 40, Max: 85}
	defaultPrecipitation = types.Stat{Avg: 100, Min: 20, Max: 300}
	defaultWind          = types.Stat{Avg: 15, Min: 5, Max: 35}
	defaultRisk          = types.RiskProfile{
		types.VeryHot:           0.015,
		types.VeryCold:          0.010,
		types.VeryWindy:         0.010,
		types.VeryWet:           0.020,
		types.VeryUncomfortable: 0.012,
	}
)

func (s *Synthesizer) fromDefaults(c types.Coordinate) types.WeatherValues {
	v := locationVariation(c, continentVariationScale)

	risk := make(types.RiskProfile, len(defaultRisk))
	for condition, r := range defaultRisk {
		risk[condition] = clamp(r+v*0.01, 0, 0.1)
	}

	return types.WeatherValues{
		Temperature:   defaultTemperature.Avg + v*5,
		TempMin:       defaultTemperature.Min + v*3,
		TempMax:       defaultTemperature.Max + v*7,
		Humidity:      clamp(defaultHumidity.Avg+v*10, 10, 95),
		WindSpeed:     math.Max(1, defaultWind.Avg+v*5),
		Precipitation: math.Max(0, defaultPrecipitation.Avg+v*20),
		Clouds:        clamp(60+v*20, 0, 100),
		ExtremeRisk:   risk,
		Confidence:    0.50,
		DataSource:    "climate_pattern_default",
	}
}

// Curve spreads a monthly estimate over individual days with a seasonal swing
// plus bounded noise. Day values never leave [TempMin, TempMax].
func (s *Synthesizer) Curve(estimate types.WeatherValues, start time.Time, days int) []types.WeatherValues {
	out := make([]types.WeatherValues, 0, days)
	for day := 0; day < days; day++ {
		swing := math.Sin(2*math.Pi*float64(day)/float64(days)) * (estimate.TempMax - estimate.Temperature) * 0.3
		temp := estimate.Temperature + swing + s.noise()

		daily := estimate
		daily.Temperature = clamp(temp, estimate.TempMin, estimate.TempMax)
		daily.ForecastTime = start.AddDate(0, 0, day)
		out = append(out, daily)
	}
	return out
}

// noise returns a uniform draw from [-2, 2).
func (s *Synthesizer) noise() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()*4 - 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
