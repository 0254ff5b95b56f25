package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stormrisk/internal/types"
)

// Inference invokes the frozen anomaly model with a prepared
// (1, 1, N)-shaped input and returns its two output scalars.
type Inference interface {
	Predict(ctx context.Context, input [][][]float64) (temperatureAnomaly, precipitationAnomaly float64, err error)
}

// HTTPClient reaches the model server's /predict endpoint. The server hosts
// the exported network and applies no preprocessing of its own.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

type predictRequest struct {
	Instances [][][]float64 `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float64 `json:"predictions"`
}

func (c *HTTPClient) Predict(ctx context.Context, input [][][]float64) (float64, float64, error) {
	body, err := json.Marshal(predictRequest{Instances: input})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s", types.ErrModelUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, 0, fmt.Errorf("%w: inference returned status %d: %s", types.ErrModelUnavailable, resp.StatusCode, string(body))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, 0, fmt.Errorf("%w: failed to decode inference response: %s", types.ErrModelUnavailable, err)
	}
	if len(out.Predictions) == 0 || len(out.Predictions[0]) < 2 {
		return 0, 0, fmt.Errorf("%w: inference response missing anomaly pair", types.ErrModelUnavailable)
	}
	return out.Predictions[0][0], out.Predictions[0][1], nil
}
