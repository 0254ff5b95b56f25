package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stormrisk/internal/types"
)

// HealthResponse reports readiness of the prediction pipeline's parts.
type HealthResponse struct {
	Status      string `json:"status" example:"healthy"`
	ModelLoaded bool   `json:"model_loaded"`
	Timestamp   string `json:"timestamp"`
}

// handleHealth godoc
// @Summary Health check
// @Description Reports service health and whether the anomaly model is loaded
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (app *App) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		ModelLoaded: app.modelAdapter != nil,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}

// ModelInfoResponse describes the frozen anomaly model.
type ModelInfoResponse struct {
	ModelVersion string   `json:"model_version"`
	FeatureCount int      `json:"feature_count"`
	Targets      []string `json:"targets"`
	TrainedAt    string   `json:"trained_at"`
	Performance  struct {
		TemperatureR2   float64 `json:"temperature_r2"`
		PrecipitationR2 float64 `json:"precipitation_r2"`
	} `json:"performance"`
	Predictions []types.RiskCondition `json:"predictions"`
}

// handleModelInfo godoc
// @Summary Model information
// @Description Metadata of the loaded anomaly model
// @Tags health
// @Produce json
// @Success 200 {object} ModelInfoResponse
// @Failure 503 {object} ErrorResponse
// @Router /model/info [get]
func (app *App) handleModelInfo(c *gin.Context) {
	if app.modelAdapter == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "anomaly model not loaded"})
		return
	}

	meta := app.modelAdapter.Metadata()
	resp := ModelInfoResponse{
		ModelVersion: meta.ModelVersion,
		FeatureCount: app.modelAdapter.FeatureCount(),
		Targets:      meta.Targets,
		TrainedAt:    meta.TrainedAt,
		Predictions:  types.Conditions,
	}
	resp.Performance.TemperatureR2 = meta.R2Temperature
	resp.Performance.PrecipitationR2 = meta.R2Precipitation

	c.JSON(http.StatusOK, resp)
}
