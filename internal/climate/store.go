// Package climate owns the static seasonal pattern tables and the synthesis
// of long-horizon forecasts from them. Documents load once at startup and are
// immutable afterwards, so concurrent reads need no synchronization.
package climate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"stormrisk/internal/region"
	"stormrisk/internal/types"
)

// continentDocument is the on-disk shape of one continent pattern file.
type continentDocument struct {
	Continent            string                           `json:"continent"`
	RepresentativeCities []string                         `json:"representative_cities"`
	SixMonthPatterns     map[string]types.SeasonalPattern `json:"six_month_patterns"`
}

// hemisphereDocument is the on-disk shape of one hemisphere pattern file.
// Hemisphere blocks summarize fields as {avg, range:[min,max]}.
type hemisphereDocument struct {
	Hemisphere       string                            `json:"hemisphere"`
	SixMonthPatterns map[string]hemispherePatternBlock `json:"six_month_patterns"`
}

type hemispherePatternBlock struct {
	GlobalTemp          rangeStat         `json:"global_temp"`
	GlobalHumidity      rangeStat         `json:"global_humidity"`
	GlobalPrecipitation rangeStat         `json:"global_precipitation"`
	GlobalWind          rangeStat         `json:"global_wind"`
	ExtremeTrends       types.RiskProfile `json:"extreme_weather_trends"`
}

type rangeStat struct {
	Avg   float64    `json:"avg"`
	Range [2]float64 `json:"range"`
}

func (r rangeStat) stat() types.Stat {
	return types.Stat{Avg: r.Avg, Min: r.Range[0], Max: r.Range[1]}
}

// mappingDocument is the on-disk shape of the coordinate-to-region table.
// Entry order is significant: first containing box wins.
type mappingDocument struct {
	CoordinateRegions []struct {
		Continent types.Continent `json:"continent"`
		LatRange  [2]float64      `json:"lat_range"`
		LonRange  [2]float64      `json:"lon_range"`
	} `json:"coordinate_regions"`
}

// Store is the read-only in-memory index of seasonal pattern documents,
// keyed by continent or hemisphere and month offset 1-6.
type Store struct {
	continents  map[types.Continent]continentDocument
	hemispheres map[types.Hemisphere]map[string]types.SeasonalPattern
	regions     []region.Box
}

// LoadStore reads location_mapping.json plus every document under
// continents/ and hemispheres/ in the data directory.
func LoadStore(dataDir string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		continents:  make(map[types.Continent]continentDocument),
		hemispheres: make(map[types.Hemisphere]map[string]types.SeasonalPattern),
	}

	var mapping mappingDocument
	if err := readJSON(filepath.Join(dataDir, "location_mapping.json"), &mapping); err != nil {
		return nil, fmt.Errorf("failed to load location mapping: %w", err)
	}
	for _, entry := range mapping.CoordinateRegions {
		s.regions = append(s.regions, region.Box{
			Continent: entry.Continent,
			LatMin:    min(entry.LatRange[0], entry.LatRange[1]),
			LatMax:    max(entry.LatRange[0], entry.LatRange[1]),
			LonMin:    min(entry.LonRange[0], entry.LonRange[1]),
			LonMax:    max(entry.LonRange[0], entry.LonRange[1]),
		})
	}

	continentFiles, err := filepath.Glob(filepath.Join(dataDir, "continents", "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list continent documents: %w", err)
	}
	for _, path := range continentFiles {
		var doc continentDocument
		if err := readJSON(path, &doc); err != nil {
			return nil, fmt.Errorf("failed to load continent document %s: %w", filepath.Base(path), err)
		}
		id := types.Continent(strings.TrimSuffix(filepath.Base(path), ".json"))
		s.continents[id] = doc
	}

	hemisphereFiles, err := filepath.Glob(filepath.Join(dataDir, "hemispheres", "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list hemisphere documents: %w", err)
	}
	for _, path := range hemisphereFiles {
		var doc hemisphereDocument
		if err := readJSON(path, &doc); err != nil {
			return nil, fmt.Errorf("failed to load hemisphere document %s: %w", filepath.Base(path), err)
		}
		id := types.Hemisphere(strings.TrimSuffix(filepath.Base(path), "_hemisphere.json"))
		patterns := make(map[string]types.SeasonalPattern, len(doc.SixMonthPatterns))
		for key, block := range doc.SixMonthPatterns {
			patterns[key] = types.SeasonalPattern{
				Temperature:   block.GlobalTemp.stat(),
				Humidity:      block.GlobalHumidity.stat(),
				Precipitation: block.GlobalPrecipitation.stat(),
				WindSpeed:     block.GlobalWind.stat(),
				ExtremeRisk:   block.ExtremeTrends,
			}
		}
		s.hemispheres[id] = patterns
	}

	logger.Info("climate pattern store loaded",
		"continents", len(s.continents),
		"hemispheres", len(s.hemispheres),
		"mapped_regions", len(s.regions),
	)

	return s, nil
}

// Pattern returns the seasonal pattern for a continent and month offset.
// Absence is not an error; callers fall back to the hemisphere pattern.
func (s *Store) Pattern(continent types.Continent, offset MonthOffset) (types.SeasonalPattern, bool) {
	doc, ok := s.continents[continent]
	if !ok {
		return types.SeasonalPattern{}, false
	}
	pattern, ok := doc.SixMonthPatterns[offset.Key()]
	return pattern, ok
}

// HemispherePattern returns the seasonal pattern for a hemisphere and month offset.
func (s *Store) HemispherePattern(hemisphere types.Hemisphere, offset MonthOffset) (types.SeasonalPattern, bool) {
	patterns, ok := s.hemispheres[hemisphere]
	if !ok {
		return types.SeasonalPattern{}, false
	}
	pattern, ok := patterns[offset.Key()]
	return pattern, ok
}

// Regions returns the configured primary coordinate-to-region table.
func (s *Store) Regions() []region.Box {
	return s.regions
}

// HasContinent reports whether a pattern document exists for the continent.
func (s *Store) HasContinent(continent types.Continent) bool {
	_, ok := s.continents[continent]
	return ok
}

// ContinentName returns the display name from the continent document, or a
// title-cased fallback derived from the identifier.
func (s *Store) ContinentName(continent types.Continent) string {
	if doc, ok := s.continents[continent]; ok && doc.Continent != "" {
		return doc.Continent
	}
	return titleCase(continent)
}

// RepresentativeCities returns the document's representative city list.
func (s *Store) RepresentativeCities(continent types.Continent) []string {
	return s.continents[continent].RepresentativeCities
}

func titleCase(continent types.Continent) string {
	words := strings.Split(string(continent), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
