package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	BackendCalls    *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	CacheHits       *prometheus.CounterVec
	CacheMisses     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		BackendCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "airlines_api_backend_calls_total",
			Help: "Total SOAP calls to the reservation backend by method and outcome",
		}, []string{"method", "outcome"}),
		BackendDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "airlines_api_backend_call_duration_seconds",
			Help:    "Latency of SOAP calls to the reservation backend",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method"}),
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "airlines_api_cache_hits_total",
			Help: "Cache hits by operation",
		}, []string{"operation"}),
		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "airlines_api_cache_misses_total",
			Help: "Cache misses by operation",
		}, []string{"operation"}),
	}
}

// ObserveCache records a cache lookup outcome.
func (m *Metrics) ObserveCache(operation string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.WithLabelValues(operation).Inc()
		return
	}
	m.CacheMisses.WithLabelValues(operation).Inc()
}

// ObserveBackendCall records one backend round trip.
func (m *Metrics) ObserveBackendCall(method, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.BackendCalls.WithLabelValues(method, outcome).Inc()
	m.BackendDuration.WithLabelValues(method).Observe(d.Seconds())
}
