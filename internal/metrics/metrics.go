// Package metrics exposes Prometheus counters for the favorites store and the HTTP API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Storage operation labels.
const (
	OpLoad  = "load"
	OpWrite = "write"
	OpClear = "clear"
)

// Metrics groups the collectors registered for one process.
type Metrics struct {
	registry *prometheus.Registry

	Toggles       *prometheus.CounterVec
	StorageOps    *prometheus.CounterVec
	StorageErrors *prometheus.CounterVec
	Sessions      *prometheus.CounterVec
}

// New creates the collectors on a private registry so tests can build as many
// instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moviehub_favorite_toggles_total",
			Help: "Favorite toggles applied in memory, by resulting state.",
		}, []string{"result"}),
		StorageOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moviehub_favorites_storage_operations_total",
			Help: "Durable storage calls issued by the favorites store.",
		}, []string{"op"}),
		StorageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moviehub_favorites_storage_errors_total",
			Help: "Durable storage calls that failed or returned malformed data.",
		}, []string{"op"}),
		Sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moviehub_session_transitions_total",
			Help: "Session provider transitions observed by the favorites store.",
		}, []string{"transition"}),
	}
	m.registry.MustRegister(
		m.Toggles,
		m.StorageOps,
		m.StorageErrors,
		m.Sessions,
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
