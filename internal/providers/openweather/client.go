// Package openweather calls the OpenWeatherMap API for live conditions and
// the 5-day/3-hour forecast.
package openweather

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

// API Docs: https://openweathermap.org/current and https://openweathermap.org/forecast5
const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// forecastSampleCount covers the full five days of 3-hourly samples.
	forecastSampleCount = 40
)

type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	baseURL    string
	apiKey     string
}

// NewClient creates an OpenWeather client. An empty baseURL selects the
// public API endpoint.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "openweather",
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
		apiKey:     apiKey,
	}
}

// Current fetches live conditions at the coordinate.
func (c *Client) Current(ctx context.Context, coord types.Coordinate) (*CurrentAPIResponse, error) {
	var response CurrentAPIResponse
	if err := c.get(ctx, "/weather", coord, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}
	return &response, nil
}

// Forecast fetches the 5-day/3-hour forecast at the coordinate.
func (c *Client) Forecast(ctx context.Context, coord types.Coordinate) (*ForecastAPIResponse, error) {
	params := url.Values{}
	params.Set("cnt", strconv.Itoa(forecastSampleCount))

	var response ForecastAPIResponse
	if err := c.get(ctx, "/forecast", coord, params, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	return &response, nil
}

func (c *Client) get(ctx context.Context, path string, coord types.Coordinate, params url.Values, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
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
		return fmt.Errorf("%w: openweather: %s", types.ErrUpstreamUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
