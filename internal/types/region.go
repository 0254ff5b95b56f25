package types

// Hemisphere identifies the half of the globe a coordinate falls in.
// Latitude zero counts as northern.
type Hemisphere string

const (
	HemisphereNorthern Hemisphere = "northern"
	HemisphereSouthern Hemisphere = "southern"
)

// Continent is the region identifier used to key climate pattern documents.
type Continent string

const (
	ContinentNorthAmerica Continent = "north_america"
	ContinentSouthAmerica Continent = "south_america"
	ContinentEurope       Continent = "europe"
	ContinentAfrica       Continent = "africa"
	ContinentAsia         Continent = "asia"
	ContinentAustralia    Continent = "australia"
	ContinentAntarctica   Continent = "antarctica"
	ContinentUnknown      Continent = "unknown"
)

// Region is the resolved {hemisphere, continent} pair for a coordinate.
// It is derived on every call, never stored per request.
type Region struct {
	Hemisphere Hemisphere `json:"hemisphere"`
	Continent  Continent  `json:"continent"`
}
