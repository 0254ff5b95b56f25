package climate

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"stormrisk/internal/region"
	"stormrisk/internal/types"
)

// MonthOutlook is one month of the long-range outlook.
type MonthOutlook struct {
	Month       string              `json:"month"`
	MonthOffset int                 `json:"month_offset"`
	Estimate    types.WeatherValues `json:"estimate"`
	RiskLevel   types.RiskLevel     `json:"risk_level"`

	// TemperatureChart holds one synthesized temperature per day of the
	// month, for charting.
	TemperatureChart []float64 `json:"temperature_chart"`
}

// Summary describes the climate context resolved for a coordinate.
type Summary struct {
	Latitude             float64          `json:"latitude"`
	Longitude            float64          `json:"longitude"`
	Hemisphere           types.Hemisphere `json:"hemisphere"`
	Continent            types.Continent  `json:"continent"`
	ContinentName        string           `json:"continent_name"`
	RepresentativeCities []string         `json:"representative_cities,omitempty"`
	PatternCoverage      string           `json:"pattern_coverage"`
	Outlook              []MonthOutlook   `json:"six_month_outlook"`
}

// Service exposes long-range climate products built from the pattern store.
type Service interface {
	// Outlook synthesizes one estimate per month offset for the next six
	// calendar months, starting with the current month.
	Outlook(c types.Coordinate) []MonthOutlook

	// Summarize resolves the region for a coordinate and attaches the
	// six-month outlook.
	Summarize(c types.Coordinate) Summary
}

type patternService struct {
	store    *Store
	synth    *Synthesizer
	resolver *region.Resolver
	classify func(types.RiskProfile) types.RiskLevel
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewService creates the climate service. classify maps a risk profile onto
// the ordinal ladder and is shared with the prediction pipeline.
func NewService(store *Store, synth *Synthesizer, classify func(types.RiskProfile) types.RiskLevel, clock clockwork.Clock, logger *slog.Logger) Service {
	return &patternService{
		store:    store,
		synth:    synth,
		resolver: region.NewResolver(store.Regions()),
		classify: classify,
		clock:    clock,
		logger:   logger,
	}
}

func (s *patternService) Outlook(c types.Coordinate) []MonthOutlook {
	now := s.clock.Now().UTC()

	outlook := make([]MonthOutlook, 0, 6)
	for i := 0; i < 6; i++ {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		offset := OffsetBetween(now, monthStart)
		estimate := s.synth.Synthesize(c, offset)

		days := daysInMonth(monthStart)
		chart := make([]float64, 0, days)
		for _, daily := range s.synth.Curve(estimate, monthStart, days) {
			chart = append(chart, daily.Temperature)
		}

		outlook = append(outlook, MonthOutlook{
			Month:            monthStart.Format("January 2006"),
			MonthOffset:      int(offset),
			Estimate:         estimate,
			RiskLevel:        s.classify(estimate.ExtremeRisk),
			TemperatureChart: chart,
		})
	}
	return outlook
}

func daysInMonth(monthStart time.Time) int {
	return monthStart.AddDate(0, 1, -1).Day()
}

func (s *patternService) Summarize(c types.Coordinate) Summary {
	reg := s.resolver.Resolve(c)

	coverage := "hemispheric"
	if s.store.HasContinent(reg.Continent) {
		coverage = "continental"
	}

	return Summary{
		Latitude:             c.Latitude,
		Longitude:            c.Longitude,
		Hemisphere:           reg.Hemisphere,
		Continent:            reg.Continent,
		ContinentName:        s.store.ContinentName(reg.Continent),
		RepresentativeCities: s.store.RepresentativeCities(reg.Continent),
		PatternCoverage:      coverage,
		Outlook:              s.Outlook(c),
	}
}
