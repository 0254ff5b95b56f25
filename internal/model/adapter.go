package model

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"stormrisk/internal/features"
	"stormrisk/internal/observability"
	"stormrisk/internal/types"
)

// RecordFeatures maps a weather record onto the model's transformed feature
// names. The names carry the training pipeline's suffixes; the values here
// are raw, with the fitted scaler applied later in Infer.
func RecordFeatures(record types.WeatherValues, coord types.Coordinate, target time.Time) features.Vector {
	month := float64(target.Month())

	return features.Vector{
		"T2M_scaled":               record.Temperature,
		"T2M_MAX_scaled":           record.TempMax,
		"T2M_MIN_scaled":           record.TempMin,
		"PRECTOTCORR_log":          math.Log1p(record.Precipitation),
		"ALLSKY_SFC_SW_DWN_scaled": record.Radiation,
		"RH2M_scaled":              record.Humidity,
		"QV2M_scaled":              record.SpecificHumidity,
		"T2M_range_scaled":         record.TempMax - record.TempMin,
		"precip_log_scaled":        math.Log1p(record.Precipitation),

		"month_sin_scaled": math.Sin(2 * math.Pi * month / 12),
		"month_cos_scaled": math.Cos(2 * math.Pi * month / 12),
		"season_encoded":   float64((int(month)%12 + 3) / 3),

		"latitude_scaled":  coord.Latitude,
		"longitude_scaled": coord.Longitude,
	}
}

// Adapter orders, scales, and reshapes a feature vector for the frozen model
// and unpacks its two anomaly scalars.
type Adapter struct {
	artifacts *Artifacts
	inference Inference
	metrics   *observability.Metrics
	logger    *slog.Logger
}

func NewAdapter(artifacts *Artifacts, inference Inference, metrics *observability.Metrics, logger *slog.Logger) *Adapter {
	return &Adapter{
		artifacts: artifacts,
		inference: inference,
		metrics:   metrics,
		logger:    logger,
	}
}

// Metadata exposes the loaded training metadata.
func (a *Adapter) Metadata() Metadata {
	return a.artifacts.Metadata
}

// FeatureCount reports the length of the model's declared feature list.
func (a *Adapter) FeatureCount() int {
	return len(a.artifacts.FeatureNames)
}

// Infer runs one prediction. The vector is ordered by the model's declared
// feature list, with 0.0 for any declared name the caller did not compute.
// Base values in the output echo the record the anomalies apply to.
func (a *Adapter) Infer(ctx context.Context, vector features.Vector, record types.WeatherValues) (types.AnomalyOutput, error) {
	ordered := make([]float64, len(a.artifacts.FeatureNames))
	for i, name := range a.artifacts.FeatureNames {
		ordered[i] = vector[name]
	}

	scaled, err := a.artifacts.Scaler.Transform(ordered)
	if err != nil {
		return types.AnomalyOutput{}, fmt.Errorf("%w: %s", types.ErrModelUnavailable, err)
	}

	// Single sample, single timestep.
	input := [][][]float64{{scaled}}

	tempAnomaly, precipAnomaly, err := a.inference.Predict(ctx, input)
	if err != nil {
		a.metrics.ModelFailures.Inc()
		return types.AnomalyOutput{}, err
	}
	a.metrics.ModelInferences.Inc()

	a.logger.Debug("model inference complete",
		"temperature_anomaly", tempAnomaly,
		"precipitation_anomaly", precipAnomaly,
	)

	return types.AnomalyOutput{
		TemperatureAnomaly:   tempAnomaly,
		PrecipitationAnomaly: precipAnomaly,
		BaseTemperature:      record.Temperature,
		BasePrecipitation:    record.Precipitation,
	}, nil
}
