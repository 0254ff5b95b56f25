package main

import (
	"log/slog"
	"math/rand"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"stormrisk/internal/climate"
	"stormrisk/internal/config"
	"stormrisk/internal/features"
	"stormrisk/internal/model"
	"stormrisk/internal/observability"
	"stormrisk/internal/predict"
	"stormrisk/internal/providers/nasapower"
	"stormrisk/internal/providers/openweather"
	"stormrisk/internal/risk"
	"stormrisk/internal/routing"
)

// App encapsulates application dependencies
type App struct {
	router *gin.Engine
	logger *slog.Logger
	cfg    *config.Config

	weatherProvider *openweather.Client
	climateService  climate.Service
	predictService  predict.Service
	modelAdapter    *model.Adapter
	metrics         *observability.Metrics
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	gin.SetMode(cfg.Server.GinMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	store, err := climate.LoadStore(cfg.Data.Dir, logger)
	if err != nil {
		return nil, err
	}
	synth := climate.NewSynthesizer(store, rand.New(rand.NewSource(clock.Now().UnixNano())), logger)
	climateSvc := climate.NewService(store, synth, risk.Classify, clock, logger)

	timeout := cfg.ProviderTimeout()
	weatherProvider := openweather.NewClient(cfg.Providers.OpenWeatherURL, cfg.Providers.OpenWeatherKey, timeout)
	historyProvider := nasapower.NewClient(cfg.Providers.PowerURL, timeout)

	sourceRouter := routing.NewRouter(
		routing.HistoryWeatherDeps{Live: weatherProvider, History: historyProvider},
		synth,
		routing.NewBaselineCache(),
		cfg.Baseline.ReferenceYear,
		cfg.Features.HistoryDaysBack,
		timeout,
		clock,
		metrics,
		logger,
	)

	// A missing or unreachable model is not fatal: predictions degrade to
	// the heuristic path.
	var adapter *model.Adapter
	if cfg.Model.ServerURL != "" {
		artifacts, err := model.LoadArtifacts(cfg.Model.ArtifactDir)
		if err != nil {
			logger.Warn("model artifacts unavailable, predictions use heuristics", "error", err)
		} else {
			inference := model.NewHTTPClient(cfg.Model.ServerURL, timeout)
			adapter = model.NewAdapter(artifacts, inference, metrics, logger)
		}
	}

	builder := features.NewBuilder(cfg.Features.LagDays, cfg.Features.RollingWindowDays)

	var anomalyModel predict.AnomalyModel
	if adapter != nil {
		anomalyModel = adapter
	}
	predictSvc := predict.NewService(sourceRouter, builder, anomalyModel, clock, metrics, logger)

	app := &App{
		router:          engine,
		logger:          logger,
		cfg:             cfg,
		weatherProvider: weatherProvider,
		climateService:  climateSvc,
		predictService:  predictSvc,
		modelAdapter:    adapter,
		metrics:         metrics,
	}

	app.registerRoutes()

	return app, nil
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}
