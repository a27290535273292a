// Package observability holds the Prometheus metrics shared by the adapters.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all omnisearch Prometheus metrics.
type Metrics struct {
	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	ProbeOutcomes   *prometheus.CounterVec
	Notifications   *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
}

// NewMetrics creates and registers all omnisearch metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BackendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "omnisearch_backend_requests_total",
			Help: "Backend API requests by response code and method.",
		}, []string{"code", "method"}),

		BackendDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "omnisearch_backend_request_duration_seconds",
			Help:    "Backend API round trip time.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),

		ProbeOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "omnisearch_auth_probes_total",
			Help: "Auth probes by classified outcome.",
		}, []string{"outcome"}),

		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "omnisearch_notifications_total",
			Help: "User-facing notifications raised, by level.",
		}, []string{"level"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "omnisearch_http_requests_total",
			Help: "Inbound HTTP requests by response code and method.",
		}, []string{"code", "method"}),
	}
}
