// Package region maps coordinates to the {hemisphere, continent} pair used to
// key climate pattern documents. Resolution never fails: a point no bounding
// box contains still resolves to {hemisphere, unknown}.
package region

import (
	"stormrisk/internal/types"
)

// Box is a closed-interval bounding box tied to a continent identifier.
type Box struct {
	Continent types.Continent
	LatMin    float64
	LatMax    float64
	LonMin    float64
	LonMax    float64
}

// Contains reports whether the coordinate falls inside the box. Both axes are
// closed intervals, so boundary points match.
func (b Box) Contains(c types.Coordinate) bool {
	return c.Latitude >= b.LatMin && c.Latitude <= b.LatMax &&
		c.Longitude >= b.LonMin && c.Longitude <= b.LonMax
}

// continentZones is the fixed secondary table covering the seven continental
// zones. It is consulted only when the configured primary table has no match.
var continentZones = []Box{
	{Continent: types.ContinentNorthAmerica, LatMin: 15, LatMax: 85, LonMin: -180, LonMax: -30},
	{Continent: types.ContinentSouthAmerica, LatMin: -55, LatMax: 15, LonMin: -85, LonMax: -30},
	{Continent: types.ContinentEurope, LatMin: 35, LatMax: 71, LonMin: -25, LonMax: 45},
	{Continent: types.ContinentAfrica, LatMin: -35, LatMax: 37, LonMin: -20, LonMax: 55},
	{Continent: types.ContinentAsia, LatMin: 8, LatMax: 55, LonMin: 73, LonMax: 180},
	{Continent: types.ContinentAustralia, LatMin: -45, LatMax: -10, LonMin: 113, LonMax: 180},
	{Continent: types.ContinentAntarctica, LatMin: -90, LatMax: -60, LonMin: -180, LonMax: 180},
}

// Resolver resolves coordinates against a configured primary bounding-box
// table, then the fixed continental zones.
type Resolver struct {
	primary []Box
}

// NewResolver creates a resolver over the given primary table. Table order is
// significant: the first containing box wins.
func NewResolver(primary []Box) *Resolver {
	return &Resolver{primary: primary}
}

// Resolve derives the region for a coordinate. Hemisphere follows the sign of
// the latitude, with zero counting as northern.
func (r *Resolver) Resolve(c types.Coordinate) types.Region {
	hemisphere := types.HemisphereNorthern
	if c.Latitude < 0 {
		hemisphere = types.HemisphereSouthern
	}

	for _, box := range r.primary {
		if box.Contains(c) {
			return types.Region{Hemisphere: hemisphere, Continent: box.Continent}
		}
	}

	for _, box := range continentZones {
		if box.Contains(c) {
			return types.Region{Hemisphere: hemisphere, Continent: box.Continent}
		}
	}

	return types.Region{Hemisphere: hemisphere, Continent: types.ContinentUnknown}
}
