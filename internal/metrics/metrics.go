// Package metrics provides Prometheus metrics for the console.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// HTTP metrics for requests served by the console
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Backend metrics for calls the console makes to the railway API
	BackendRequestsTotal   *prometheus.CounterVec
	BackendRequestDuration *prometheus.HistogramVec
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lankarail_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lankarail_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	backendRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lankarail_backend_requests_total",
			Help: "Total number of calls to the railway backend by outcome",
		},
		[]string{"resource", "method", "outcome"},
	)

	backendRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lankarail_backend_request_duration_seconds",
			Help:    "Railway backend call latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		backendRequestsTotal,
		backendRequestDuration,
	)

	return &Metrics{
		Registry:               registry,
		HTTPRequestsTotal:      httpRequestsTotal,
		HTTPRequestDuration:    httpRequestDuration,
		BackendRequestsTotal:   backendRequestsTotal,
		BackendRequestDuration: backendRequestDuration,
	}
}

// ObserveBackend records one backend call. Safe on a nil receiver.
func (m *Metrics) ObserveBackend(resource, method, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.BackendRequestsTotal.WithLabelValues(resource, method, outcome).Inc()
	m.BackendRequestDuration.WithLabelValues(resource, method).Observe(seconds)
}
