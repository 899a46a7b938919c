// Package metrics provides Prometheus metrics integration.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry manages Prometheus metrics registration and exposure.
// It provides a central place to register custom metrics and includes
// HTTP metrics and Go runtime metrics by default.
type Registry struct {
	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with default collectors:
// HTTP request metrics, form submission metrics and Go runtime metrics.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(httpRequestDuration)
	reg.MustRegister(httpRequestsTotal)
	reg.MustRegister(httpRequestsInFlight)
	reg.MustRegister(formSubmissionsTotal)

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Registry{
		registry: reg,
	}
}

// Register registers a custom Prometheus collector.
func (r *Registry) Register(collector prometheus.Collector) error {
	return r.registry.Register(collector)
}

// MustRegister registers custom Prometheus collectors and panics on error.
func (r *Registry) MustRegister(collectors ...prometheus.Collector) {
	r.registry.MustRegister(collectors...)
}

// Unregister removes a collector from the registry.
func (r *Registry) Unregister(collector prometheus.Collector) bool {
	return r.registry.Unregister(collector)
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
// It should be mounted on the management server at /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Gatherer returns the underlying prometheus.Gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
