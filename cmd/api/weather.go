package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleCurrentWeather godoc
// @Summary Current conditions
// @Description Live weather record for a coordinate
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} types.WeatherValues
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /weather/current [get]
func (app *App) handleCurrentWeather(c *gin.Context) {
	coord, ok := queryCoordinate(c)
	if !ok {
		return
	}

	resp, err := app.weatherProvider.Current(c.Request.Context(), coord)
	if err != nil {
		app.logger.Error("current weather fetch failed", "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp.WeatherValues())
}
