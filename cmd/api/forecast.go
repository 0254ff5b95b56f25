package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stormrisk/internal/climate"
	"stormrisk/internal/providers/openweather"
	"stormrisk/internal/types"
)

// ForecastRequest asks for a forecast sequence. Coordinate bounds are checked
// by types.NewCoordinate, not binding tags.
type ForecastRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// DaysAhead only affects hybrid type selection and short-range length.
	DaysAhead int `json:"days_ahead"`

	// ForecastType is auto, short, or long.
	ForecastType string `json:"forecast_type"`
}

// ForecastResponse carries either a short-range daily sequence or a
// six-month outlook, disclosed by ForecastType.
type ForecastResponse struct {
	Location     Location                   `json:"location"`
	ForecastType string                     `json:"forecast_type"`
	Daily        []openweather.DailySummary `json:"daily,omitempty"`
	Monthly      []climate.MonthOutlook     `json:"monthly,omitempty"`
	GeneratedAt  string                     `json:"generated_at"`
}

// Location echoes the request coordinate.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// handleForecast godoc
// @Summary Six-month climate forecast
// @Description Long-range monthly outlook from climate patterns
// @Tags forecasts
// @Accept json
// @Produce json
// @Param request body ForecastRequest true "Location"
// @Success 200 {object} ForecastResponse
// @Failure 400 {object} ErrorResponse
// @Router /forecast [post]
func (app *App) handleForecast(c *gin.Context) {
	coord, ok := app.bindForecastCoord(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ForecastResponse{
		Location:     Location{Latitude: coord.Latitude, Longitude: coord.Longitude},
		ForecastType: "long",
		Monthly:      app.climateService.Outlook(coord),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	})
}

// handleHybridForecast godoc
// @Summary Hybrid forecast
// @Description Short-range provider forecast within five days, climate outlook beyond
// @Tags forecasts
// @Accept json
// @Produce json
// @Param request body ForecastRequest true "Location, horizon, and type"
// @Success 200 {object} ForecastResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /forecast/hybrid [post]
func (app *App) handleHybridForecast(c *gin.Context) {
	var req ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	coord, err := types.NewCoordinate(req.Latitude, req.Longitude)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	daysAhead := req.DaysAhead
	if daysAhead <= 0 {
		daysAhead = 5
	}

	forecastType := req.ForecastType
	if forecastType == "" || forecastType == "auto" {
		if daysAhead <= 5 {
			forecastType = "short"
		} else {
			forecastType = "long"
		}
	}

	resp := ForecastResponse{
		Location:     Location{Latitude: coord.Latitude, Longitude: coord.Longitude},
		ForecastType: forecastType,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	switch forecastType {
	case "short":
		forecast, err := app.weatherProvider.Forecast(c.Request.Context(), coord)
		if err != nil {
			app.logger.Error("short-range forecast failed", "error", err)
			c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
			return
		}
		if daysAhead > 5 {
			daysAhead = 5
		}
		resp.Daily = forecast.DailySummaries(daysAhead)
	case "long":
		resp.Monthly = app.climateService.Outlook(coord)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "forecast_type must be auto, short, or long"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (app *App) bindForecastCoord(c *gin.Context) (types.Coordinate, bool) {
	var req ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return types.Coordinate{}, false
	}

	coord, err := types.NewCoordinate(req.Latitude, req.Longitude)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return types.Coordinate{}, false
	}
	return coord, true
}
