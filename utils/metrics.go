package utils

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors the engine reports into. Pass it
// to a SearchServer with WithMetrics; a nil Metrics disables reporting.
type Metrics struct {
	searchesTotal    *prometheus.CounterVec
	searchDuration   prometheus.Histogram
	emptyResults     prometheus.Counter
	documentsIndexed prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_requests_total",
				Help: "Total number of find requests by execution policy",
			},
			[]string{"policy"},
		),
		searchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_duration_seconds",
				Help:    "Find request duration in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		emptyResults: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "search_empty_results_total",
				Help: "Total number of find requests that returned no documents",
			},
		),
		documentsIndexed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "indexed_documents",
				Help: "Number of live documents in the index",
			},
		),
	}
	registry.MustRegister(m.searchesTotal, m.searchDuration, m.emptyResults, m.documentsIndexed)
	return m
}

func (m *Metrics) searchDone(policy ExecutionPolicy, took time.Duration, empty bool) {
	m.searchesTotal.WithLabelValues(policy.String()).Inc()
	m.searchDuration.Observe(took.Seconds())
	if empty {
		m.emptyResults.Inc()
	}
}

func (m *Metrics) documentAdded() {
	m.documentsIndexed.Inc()
}

func (m *Metrics) documentRemoved() {
	m.documentsIndexed.Dec()
}
