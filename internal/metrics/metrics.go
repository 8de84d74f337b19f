package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the dashboard's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	opDuration   *prometheus.HistogramVec
	opErrors     *prometheus.CounterVec
}

// New registers the collectors on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gotera",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route pattern and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gotera",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gotera",
			Name:      "graphql_operation_duration_seconds",
			Help:      "Round trip latency of GraphQL operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		opErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gotera",
			Name:      "graphql_operation_errors_total",
			Help:      "Failed GraphQL operations by kind (transport or server).",
		}, []string{"operation", "kind"}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.opDuration,
		m.opErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry (tests gather from it).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveOperation records one GraphQL round trip. kind is empty on success.
func (m *Metrics) ObserveOperation(operation, kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.opDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if kind != "" {
		m.opErrors.WithLabelValues(operation, kind).Inc()
	}
}
