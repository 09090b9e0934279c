package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		1, 2.5, 5, 10, // single listings
		25, 50, 100, 250, // small batches
		500, 1000, 2500, 5000, // large batches
	}

	scoreBuckets = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.85, 0.9, 0.95, 1}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingguard_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "status"},
	)

	DecisionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingguard_decisions_total",
			Help: "Moderation decisions by outcome",
		},
		[]string{"decision"},
	)

	OverallScore = promauto.With(registerer).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "listingguard_overall_score",
			Help:    "Distribution of overall moderation scores",
			Buckets: scoreBuckets,
		},
	)

	ModelFallbacksTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingguard_model_fallbacks_total",
			Help: "Times a model could not answer and the heuristic was used",
		},
		[]string{"model", "reason"},
	)

	ModerationLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listingguard_moderation_latency_ms",
			Help:    "Moderation latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"mode"}, // "single" or "batch"
	)
)

type MetricsConfig struct {
	EnableLatency bool
	EnableScores  bool
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency: true,
		EnableScores:  true,
	}
}

var Config = DefaultMetricsConfig()

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

func Gatherer() prometheus.Gatherer {
	return registry
}

// RecordFallback counts one heuristic fallback of a model slot.
func RecordFallback(model, reason string) {
	ModelFallbacksTotal.WithLabelValues(model, reason).Inc()
}
