package nasapower

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stormrisk/internal/types"
)

func testCoord(t *testing.T) types.Coordinate {
	t.Helper()
	c, err := types.NewCoordinate(40.7, -74.0)
	require.NoError(t, err)
	return c
}

func TestHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "RE", q.Get("community"))
		assert.Equal(t, "20240901", q.Get("start"))
		assert.Equal(t, "20240903", q.Get("end"))
		assert.Contains(t, q.Get("parameters"), "T2M")
		assert.Contains(t, q.Get("parameters"), "CLOUD_AMT")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"properties": {
				"parameter": {
					"T2M": {"20240901": 21.3, "20240902": 22.1, "20240903": -999},
					"PRECTOTCORR": {"20240901": 0.4, "20240902": 1.2, "20240903": 0.1},
					"RH2M": {"20240901": 61, "20240902": 64, "20240903": 59}
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	start := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	series, err := client.History(context.Background(), testCoord(t), start, end)
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, start, series[0].Date)
	assert.Equal(t, 21.3, series[0].Temperature)
	assert.Equal(t, 0.4, series[0].Precip)
	assert.Equal(t, 61.0, series[0].Humidity)

	// Fill values read as zero.
	assert.Equal(t, 0.0, series[2].Temperature)

	// Parameters the payload omits entirely read as zero too.
	assert.Equal(t, 0.0, series[0].WindSpeed)
}

func TestHistory_EmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"properties": {"parameter": {}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.History(context.Background(), testCoord(t), time.Now().AddDate(0, 0, -3), time.Now())
	require.Error(t, err)
}

func TestHistory_NonOKStatusIsUpstreamUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.History(context.Background(), testCoord(t), time.Now().AddDate(0, 0, -3), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
}

func TestSeries_SortedByDate(t *testing.T) {
	resp := &APIResponse{}
	resp.Properties.Parameter = map[string]map[string]float64{
		"T2M": {"20240903": 3, "20240901": 1, "20240902": 2},
	}

	series, err := resp.Series()
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.True(t, series[0].Date.Before(series[1].Date))
	assert.True(t, series[1].Date.Before(series[2].Date))
	assert.Equal(t, 1.0, series[0].Temperature)
}
