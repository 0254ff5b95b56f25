// Package nasapower calls the NASA POWER daily point API for historical
// surface weather observations.
package nasapower

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"

	"stormrisk/internal/types"
)

// API Docs: https://power.larc.nasa.gov/docs/services/api/temporal/daily/
// Sample request: https://power.larc.nasa.gov/api/temporal/daily/point?parameters=T2M,PRECTOTCORR&community=RE&latitude=40.71&longitude=-74.01&start=20240101&end=20240131&format=JSON
const (
	defaultBaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

	dateLayout = "20060102"
)

// requestedParameters are the daily columns the feature pipeline consumes.
var requestedParameters = []string{
	"T2M", "T2M_MAX", "T2M_MIN", "PRECTOTCORR", "WS2M", "RH2M", "PS", "CLOUD_AMT",
}

type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	baseURL    string
}

// NewClient creates a POWER client. An empty baseURL selects the public API
// endpoint. POWER requires no API key.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "nasapower",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
		baseURL:    baseURL,
	}
}

// History fetches daily observations for the closed date range [start, end].
// The returned series is sorted by date.
func (c *Client) History(ctx context.Context, coord types.Coordinate, start, end time.Time) (types.HistoricalSeries, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := url.Values{}
	params.Set("parameters", joinParameters())
	params.Set("community", "RE")
	params.Set("latitude", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("start", start.Format(dateLayout))
	params.Set("end", end.Format(dateLayout))
	params.Set("format", "JSON")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			_ = resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: nasa power: %s", types.ErrUpstreamUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var response APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	series, err := response.Series()
	if err != nil {
		return nil, fmt.Errorf("failed to assemble history: %w", err)
	}
	return series, nil
}

func joinParameters() string {
	out := requestedParameters[0]
	for _, p := range requestedParameters[1:] {
		out += "," + p
	}
	return out
}
