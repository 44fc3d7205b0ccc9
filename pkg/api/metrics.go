package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors for the route surface.
type Metrics struct {
	gatherer prometheus.Gatherer

	Requests *prometheus.CounterVec
	Duration prometheus.Histogram
}

// NewMetrics registers the route metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	m := &Metrics{
		gatherer: gatherer,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "route_requests_total",
			Help: "Route requests handled, labeled by resolution method.",
		}, []string{"method"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "route_request_duration_seconds",
			Help:    "End-to-end route request latency in seconds.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
	}
	reg.MustRegister(m.Requests, m.Duration)
	return m
}

// Handler serves the /metrics endpoint for this collector's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
