// Package predict orchestrates a prediction request end to end: source
// routing, feature assembly, model inference, and risk scoring.
package predict

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"stormrisk/internal/features"
	"stormrisk/internal/model"
	"stormrisk/internal/observability"
	"stormrisk/internal/risk"
	"stormrisk/internal/routing"
	"stormrisk/internal/types"
)

// Source labels for the final response, beyond the per-record provenance the
// router already sets.
const (
	sourceHybridModel = "lstm_nasa_hybrid"
	sourceHeuristic   = "heuristic"
)

// Prediction is the full response for one request.
type Prediction struct {
	Location    Location            `json:"location"`
	Date        string              `json:"date"`
	Predictions types.RiskProfile   `json:"predictions"`
	RiskLevel   types.RiskLevel     `json:"risk_level"`
	DataSource  string              `json:"data_source"`
	LeadDays    int                 `json:"lead_days"`
	Weather     types.WeatherValues `json:"weather"`
	Timestamp   string              `json:"timestamp"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AnomalyModel is the inference boundary. A nil model is valid and routes
// every request down the heuristic path.
type AnomalyModel interface {
	Infer(ctx context.Context, vector features.Vector, record types.WeatherValues) (types.AnomalyOutput, error)
}

// Service produces extreme-weather predictions.
type Service interface {
	Predict(ctx context.Context, coord types.Coordinate, target time.Time) (Prediction, error)
}

type predictionService struct {
	router  *routing.Router
	builder *features.Builder
	model   AnomalyModel
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewService creates the prediction service. model may be nil when the
// inference artifacts failed to load.
func NewService(router *routing.Router, builder *features.Builder, anomalyModel AnomalyModel, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) Service {
	return &predictionService{
		router:  router,
		builder: builder,
		model:   anomalyModel,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *predictionService) Predict(ctx context.Context, coord types.Coordinate, target time.Time) (Prediction, error) {
	result, err := s.router.Route(ctx, coord, target)
	if err != nil {
		s.metrics.PredictionErrors.Inc()
		return Prediction{}, fmt.Errorf("failed to resolve weather data: %w", err)
	}

	record, profile, source := s.score(ctx, coord, target, result)
	level := risk.Classify(profile)
	s.metrics.PredictionsTotal.WithLabelValues(string(level)).Inc()

	s.logger.Info("prediction complete",
		"lat", coord.Latitude,
		"lon", coord.Longitude,
		"date", target.Format("2006-01-02"),
		"path", string(result.Path),
		"source", source,
		"risk_level", string(level),
	)

	return Prediction{
		Location:    Location{Latitude: coord.Latitude, Longitude: coord.Longitude},
		Date:        target.Format("2006-01-02"),
		Predictions: profile,
		RiskLevel:   level,
		DataSource:  source,
		LeadDays:    result.LeadDays,
		Weather:     record,
		Timestamp:   s.clock.Now().UTC().Format(time.RFC3339),
	}, nil
}

// score picks the scoring path: a region-derived risk map rides through
// untouched, otherwise the model runs, and any model failure degrades to the
// heuristic thresholds.
func (s *predictionService) score(ctx context.Context, coord types.Coordinate, target time.Time, result routing.Result) (types.WeatherValues, types.RiskProfile, string) {
	record := result.Record

	if len(record.ExtremeRisk) > 0 {
		return record, record.ExtremeRisk, record.DataSource
	}

	if s.model != nil {
		vector := model.RecordFeatures(record, coord, target)
		if len(result.Series) > 0 {
			vector.Merge(s.builder.Build(result.Series, target))
		}

		anomaly, err := s.model.Infer(ctx, vector, record)
		if err == nil {
			adjusted, profile := risk.Blend(anomaly, record)
			return adjusted, profile, sourceHybridModel
		}
		s.logger.Warn("model inference failed, using heuristic thresholds", "error", err)
	}

	return record, risk.Heuristic(record), sourceHeuristic
}
