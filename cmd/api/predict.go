package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stormrisk/internal/types"
)

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PredictRequest asks for an extreme-weather risk assessment. Coordinate
// bounds are checked by types.NewCoordinate, not binding tags: zero is a
// valid latitude and longitude.
type PredictRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Date      string  `json:"date" binding:"required" example:"2026-09-15"`
}

// handlePredict godoc
// @Summary Predict extreme weather risk
// @Description Probability of each extreme condition for a location and date
// @Tags predictions
// @Accept json
// @Produce json
// @Param request body PredictRequest true "Location and target date"
// @Success 200 {object} predict.Prediction
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /predict [post]
func (app *App) handlePredict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	coord, err := types.NewCoordinate(req.Latitude, req.Longitude)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	target, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be formatted YYYY-MM-DD"})
		return
	}

	prediction, err := app.predictService.Predict(c.Request.Context(), coord, target)
	if err != nil {
		app.logger.Error("prediction failed", "error", err, "request_id", c.GetString("request_id"))
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, prediction)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
