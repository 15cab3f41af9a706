// Package metrics exposes prometheus collectors for the store and HTTP layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/go-cotizaciones/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors registered on one registry.
type Metrics struct {
	registry        *prometheus.Registry
	Mutations       *prometheus.CounterVec
	PersistFailures prometheus.Counter
	Requests        *prometheus.CounterVec
	Duration        *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cotizaciones_store_mutations_total",
			Help: "Committed store mutations by collection and operation.",
		}, []string{"collection", "op"}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cotizaciones_store_persist_failures_total",
			Help: "Snapshot writes that failed.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cotizaciones_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cotizaciones_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(m.Mutations, m.PersistFailures, m.Requests, m.Duration)
	return m
}

// Observe is a store subscriber.
func (m *Metrics) Observe(ch store.Change) {
	m.Mutations.WithLabelValues(ch.Collection, string(ch.Op)).Inc()
	if ch.PersistErr != nil {
		m.PersistFailures.Inc()
	}
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests and records their latency.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.Requests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		m.Duration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
