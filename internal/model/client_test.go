package model

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stormrisk/internal/types"
)

func TestHTTPClient_Predict(t *testing.T) {
	var gotBody predictRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(predictResponse{Predictions: [][]float64{{0.12, -0.3}}})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	temp, precip, err := client.Predict(context.Background(), [][][]float64{{{1, 2, 3}}})
	require.NoError(t, err)

	assert.Equal(t, 0.12, temp)
	assert.Equal(t, -0.3, precip)
	assert.Equal(t, [][][]float64{{{1, 2, 3}}}, gotBody.Instances)
}

func TestHTTPClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	_, _, err := client.Predict(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrModelUnavailable)
}

func TestHTTPClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(predictResponse{Predictions: [][]float64{{0.5}}})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	_, _, err := client.Predict(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrModelUnavailable)
}
