// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several servers (and tests) can coexist
// in one process.
type Metrics struct {
	registry *prometheus.Registry

	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	articlesRendered *prometheus.CounterVec
	renderErrors     prometheus.Counter
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventsite_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eventsite_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		articlesRendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventsite_articles_rendered_total",
				Help: "Total number of articles rendered, by tab",
			},
			[]string{"tab"},
		),
		renderErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "eventsite_render_errors_total",
				Help: "Total number of failures while loading or rendering content",
			},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.articlesRendered,
		m.renderErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	m.requests.WithLabelValues(method, route, status).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(seconds)
}

// ArticlesRendered counts n articles served from tab.
func (m *Metrics) ArticlesRendered(tab string, n int) {
	if n <= 0 {
		return
	}
	m.articlesRendered.WithLabelValues(tab).Add(float64(n))
}

// RenderError counts one content failure.
func (m *Metrics) RenderError() {
	m.renderErrors.Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
