// Package observability has logging setup and Prometheus metrics for devscope.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "devscope"

// Metrics records upstream traffic and lookup outcomes in a private registry.
type Metrics struct {
	registry         *prometheus.Registry
	upstreamRequests *prometheus.CounterVec
	lookups          *prometheus.CounterVec
	lookupDuration   prometheus.Histogram
	languageFailures prometheus.Counter
}

var _ contract.Recorder = &Metrics{} // Compile-time check

// NewMetrics creates and registers all devscope collectors. When withRuntime
// is set, the Go runtime and process collectors are registered too.
func NewMetrics(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream API responses by endpoint and status code (0 for transport failures).",
		}, []string{"endpoint", "status"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Handle lookups by outcome.",
		}, []string{"outcome"}),
		lookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Wall time of a full handle lookup.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		languageFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "language_fetch_failures_total",
			Help:      "Projects whose language data was replaced by an empty map.",
		}),
	}
	m.registry.MustRegister(m.upstreamRequests, m.lookups, m.lookupDuration, m.languageFailures)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// ObserveUpstream implements the Recorder interface.
func (m *Metrics) ObserveUpstream(endpoint schema.Endpoint, status int) {
	m.upstreamRequests.WithLabelValues(string(endpoint), strconv.Itoa(status)).Inc()
}

// ObserveLookup implements the Recorder interface.
func (m *Metrics) ObserveLookup(outcome string, duration time.Duration) {
	m.lookups.WithLabelValues(outcome).Inc()
	m.lookupDuration.Observe(duration.Seconds())
}

// AddLanguageFailures implements the Recorder interface.
func (m *Metrics) AddLanguageFailures(n int) {
	if n > 0 {
		m.languageFailures.Add(float64(n))
	}
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
