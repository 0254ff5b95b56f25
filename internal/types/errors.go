package types

import "errors"

// Error classes for the routing and prediction pipeline. Missing data points
// (a lag row, a rolling window, the target day itself) are deliberately not
// errors: they degrade to neutral defaults and lower confidence instead.
var (
	// ErrUpstreamUnavailable wraps provider failures. The source router catches
	// it and walks the fallback chain; it only reaches the caller when every
	// fallback has failed too.
	ErrUpstreamUnavailable = errors.New("upstream data source unavailable")

	// ErrModelUnavailable signals that the frozen inference artifacts are
	// missing or the inference call failed. Callers switch to the heuristic
	// risk path.
	ErrModelUnavailable = errors.New("inference model unavailable")

	// ErrInvalidInput marks coordinate or date values outside the request
	// contract. This is the only class surfaced as a request failure.
	ErrInvalidInput = errors.New("invalid input")
)
