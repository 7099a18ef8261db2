// Package metrics exposes the front end's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	obserrors "github.com/learnsphere/learnsphere-ui/internal/observability/errors"
)

const namespace = "learnsphere"

// Result labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	sessionEvents  *prometheus.CounterVec
	guardDecisions *prometheus.CounterVec
	apiDuration    *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	rateLimited    prometheus.Counter
	storagePurged  prometheus.Counter
}

// New registers every collector plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "events_total",
			Help:      "Session transitions by event, result and error class.",
		}, []string{"event", "result", "error_class"}),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guard",
			Name:      "decisions_total",
			Help:      "Route guard decisions by route and outcome.",
		}, []string{"route", "decision"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Backend API call latency by endpoint and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Served HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Served HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "rate_limited_total",
			Help:      "Login and registration submissions rejected by the rate limiter.",
		}),
		storagePurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "purged_entries_total",
			Help:      "Expired client storage entries deleted by the purge loop.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sessionEvents,
		m.guardDecisions,
		m.apiDuration,
		m.httpRequests,
		m.httpDuration,
		m.rateLimited,
		m.storagePurged,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// SessionEvent implements session.Observer.
func (m *Metrics) SessionEvent(event string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.sessionEvents.WithLabelValues(event, result, obserrors.Classify(err)).Inc()
}

// ObserveAPIRequest implements apiclient.Recorder.
func (m *Metrics) ObserveAPIRequest(endpoint, outcome string, d time.Duration) {
	m.apiDuration.WithLabelValues(endpoint, outcome).Observe(d.Seconds())
}

// ObserveGuard counts one guard decision.
func (m *Metrics) ObserveGuard(route, decision string) {
	m.guardDecisions.WithLabelValues(route, decision).Inc()
}

// ObserveHTTP records a served request. route must be the mux pattern, not
// the raw path, to keep cardinality bounded.
func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// RateLimited counts one rejected auth submission.
func (m *Metrics) RateLimited() { m.rateLimited.Inc() }

// StoragePurged adds n purged entries.
func (m *Metrics) StoragePurged(n int64) {
	if n > 0 {
		m.storagePurged.Add(float64(n))
	}
}
