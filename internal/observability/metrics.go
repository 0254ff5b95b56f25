package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the prediction
// pipeline.
type Metrics struct {
	PredictionsTotal *prometheus.CounterVec // labels: risk_level
	PredictionErrors prometheus.Counter

	// Source routing metrics.
	RoutesTotal    *prometheus.CounterVec   // labels: path={current,forecast,baseline}
	FallbacksTotal *prometheus.CounterVec   // labels: from, to
	BaselineCache  *prometheus.CounterVec   // labels: result={hit,miss}
	ProviderCalls  *prometheus.HistogramVec // labels: provider={openweather,nasapower,model}

	// Inference metrics.
	ModelInferences prometheus.Counter
	ModelFailures   prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PredictionsTotal,
		m.PredictionErrors,
		m.RoutesTotal,
		m.FallbacksTotal,
		m.BaselineCache,
		m.ProviderCalls,
		m.ModelInferences,
		m.ModelFailures,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stormrisk",
			Name:      "predictions_total",
			Help:      "Completed predictions by assessed risk level.",
		}, []string{"risk_level"}),
		PredictionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stormrisk",
			Name:      "prediction_errors_total",
			Help:      "Prediction requests that failed after every fallback.",
		}),
		RoutesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stormrisk",
			Name:      "routes_total",
			Help:      "Source router decisions by path.",
		}, []string{"path"}),
		FallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stormrisk",
			Name:      "fallbacks_total",
			Help:      "Fallback transitions taken after an upstream failure.",
		}, []string{"from", "to"}),
		BaselineCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stormrisk",
			Name:      "baseline_cache_total",
			Help:      "Baseline cache lookups by result.",
		}, []string{"result"}),
		ProviderCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stormrisk",
			Name:      "provider_call_duration_seconds",
			Help:      "Upstream call duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider"}),
		ModelInferences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stormrisk",
			Name:      "model_inferences_total",
			Help:      "Successful frozen-model inference calls.",
		}),
		ModelFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stormrisk",
			Name:      "model_failures_total",
			Help:      "Inference attempts that fell back to the heuristic path.",
		}),
	}
}
