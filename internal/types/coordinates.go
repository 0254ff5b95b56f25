package types

import "fmt"

// Coordinate is a validated geographic point.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// NewCoordinate validates the latitude/longitude bounds and returns a Coordinate.
// Out-of-range input is the only request-level failure in the pipeline.
func NewCoordinate(latitude, longitude float64) (Coordinate, error) {
	if latitude < -90 || latitude > 90 {
		return Coordinate{}, fmt.Errorf("%w: latitude %.4f outside [-90, 90]", ErrInvalidInput, latitude)
	}
	if longitude < -180 || longitude > 180 {
		return Coordinate{}, fmt.Errorf("%w: longitude %.4f outside [-180, 180]", ErrInvalidInput, longitude)
	}
	return Coordinate{Latitude: latitude, Longitude: longitude}, nil
}
