// Package model packages feature vectors for the frozen anomaly model and
// invokes it over the inference server's HTTP interface.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stormrisk/internal/types"
)

// Artifacts are the frozen model's companion files: its declared feature
// order, fitted input scaler, and training metadata. Loaded once at startup
// and treated as opaque afterwards.
type Artifacts struct {
	FeatureNames []string
	Scaler       Scaler
	Metadata     Metadata
}

// Scaler is the fitted standard-scaler transform exported from training.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform applies (x - mean) / scale element-wise.
func (s Scaler) Transform(in []float64) ([]float64, error) {
	if len(in) != len(s.Mean) || len(in) != len(s.Scale) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(in))
	}
	out := make([]float64, len(in))
	for i, x := range in {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (x - s.Mean[i]) / scale
	}
	return out, nil
}

// Metadata describes the frozen model's training run. The fit-quality scores
// drive the blender's trust decisions.
type Metadata struct {
	ModelVersion    string  `json:"model_version"`
	Targets         []string `json:"targets"`
	R2Temperature   float64 `json:"r2_temperature"`
	R2Precipitation float64 `json:"r2_precipitation"`
	TrainedAt       string  `json:"trained_at"`
}

type featureNamesFile struct {
	AllFeaturesTransformed []string `json:"all_features_transformed"`
}

// LoadArtifacts reads the artifact directory. Any missing or malformed file
// maps to ErrModelUnavailable so callers switch to the heuristic path.
func LoadArtifacts(dir string) (*Artifacts, error) {
	var names featureNamesFile
	if err := readArtifact(filepath.Join(dir, "feature_names.json"), &names); err != nil {
		return nil, err
	}
	if len(names.AllFeaturesTransformed) == 0 {
		return nil, fmt.Errorf("%w: feature name list is empty", types.ErrModelUnavailable)
	}

	a := &Artifacts{FeatureNames: names.AllFeaturesTransformed}
	if err := readArtifact(filepath.Join(dir, "scaler.json"), &a.Scaler); err != nil {
		return nil, err
	}
	if len(a.Scaler.Mean) != len(a.FeatureNames) || len(a.Scaler.Scale) != len(a.FeatureNames) {
		return nil, fmt.Errorf("%w: scaler dimensions do not match feature list", types.ErrModelUnavailable)
	}
	if err := readArtifact(filepath.Join(dir, "metadata.json"), &a.Metadata); err != nil {
		return nil, err
	}
	return a, nil
}

func readArtifact(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrModelUnavailable, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %s", types.ErrModelUnavailable, filepath.Base(path), err)
	}
	return nil
}
