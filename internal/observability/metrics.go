// Package observability exposes Prometheus metrics for the server.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julianstephens/ruleoflife/internal/completion"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
)

const namespace = "rule"

// Metrics holds the collectors for one registry. A nil *Metrics records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	toggles        *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec
}

// NewMetrics registers the collectors on a fresh registry together with the
// Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "completion",
			Name:      "toggles_total",
			Help:      "Completion toggles by resulting state.",
		}, []string{"state"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "completion",
			Name:      "rejections_total",
			Help:      "Completion toggles refused, by error code.",
		}, []string{"code"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "liturgical",
			Name:      "cache_lookups_total",
			Help:      "Liturgical day cache lookups by result.",
		}, []string{"result"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		m.toggles,
		m.rejections,
		m.cacheLookups,
		m.requestSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ToggleCompleted(state completion.State) {
	if m == nil {
		return
	}
	m.toggles.WithLabelValues(string(state)).Inc()
}

func (m *Metrics) ToggleRejected(err error) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(apperrors.Code(err)).Inc()
}

func (m *Metrics) LiturgicalCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestSeconds.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
