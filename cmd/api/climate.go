package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stormrisk/internal/types"
)

// handleClimateSummary godoc
// @Summary Regional climate summary
// @Description Region resolution, representative cities, and the six-month outlook
// @Tags climate
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} climate.Summary
// @Failure 400 {object} ErrorResponse
// @Router /climate/summary [get]
func (app *App) handleClimateSummary(c *gin.Context) {
	coord, ok := queryCoordinate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, app.climateService.Summarize(coord))
}

func queryCoordinate(c *gin.Context) (types.Coordinate, bool) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat must be a number"})
		return types.Coordinate{}, false
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lon must be a number"})
		return types.Coordinate{}, false
	}

	coord, err := types.NewCoordinate(lat, lon)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return types.Coordinate{}, false
	}
	return coord, true
}
