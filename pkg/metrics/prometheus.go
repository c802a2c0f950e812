package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the scheduler's prometheus collectors, registered on their own registry
type Metrics struct {
	Registry *prometheus.Registry

	Optimizations    *prometheus.CounterVec
	InvalidInputs    prometheus.Counter
	ModelVariables   prometheus.Gauge
	ModelConstraints prometheus.Gauge
	SolveDuration    prometheus.Histogram
}

// NewMetrics creates the collectors under the given namespace
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		Optimizations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimizations_total",
			Help:      "The total number of schedule optimizations by solver status",
		}, []string{"status"}),
		InvalidInputs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_inputs_total",
			Help:      "The total number of optimizations rejected before model construction",
		}),
		ModelVariables: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_variables",
			Help:      "Number of variables in the last built model",
		}),
		ModelConstraints: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_constraints",
			Help:      "Number of constraints in the last built model",
		}),
		SolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Time spent by the solving engine",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}
}

// WriteToTextfile dumps the registry in the text exposition format, for node_exporter's textfile collector
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
