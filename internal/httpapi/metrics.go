package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "c4gen"

// Metrics holds the Prometheus collectors of the HTTP API.
type Metrics struct {
	// RequestsTotal counts requests by endpoint and outcome.
	// Labels: endpoint (diagrams, validate), status (success, client_error, error)
	RequestsTotal *prometheus.CounterVec

	// RequestDurationSeconds measures request handling time.
	// Labels: endpoint
	RequestDurationSeconds *prometheus.HistogramVec

	// GraphElements observes the size of every graph built.
	GraphElements prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total API requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		RequestDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		GraphElements: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "graph",
				Name:      "elements",
				Help:      "Number of elements per built graph",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}
}

func (m *Metrics) record(endpoint, status string, seconds float64) {
	m.RequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.RequestDurationSeconds.WithLabelValues(endpoint).Observe(seconds)
}
