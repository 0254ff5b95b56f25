package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	app.router.GET("/health", app.handleHealth)
	app.router.GET("/model/info", app.handleModelInfo)

	app.router.POST("/predict", app.handlePredict)
	app.router.POST("/forecast", app.handleForecast)
	app.router.POST("/forecast/hybrid", app.handleHybridForecast)

	app.router.GET("/climate/summary", app.handleClimateSummary)
	app.router.GET("/weather/current", app.handleCurrentWeather)

	// Prometheus metrics
	app.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(301, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	})
}
