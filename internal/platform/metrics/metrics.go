// Package metrics exposes Prometheus counters for domain events, pending
// confirmations and HTTP traffic.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/studygroup-api/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors. Build it with New.
type Metrics struct {
	DomainEvents  *prometheus.CounterVec
	Confirmations *prometheus.CounterVec
	Requests      *prometheus.CounterVec
	Latency       *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg. Every known event
// type starts at zero so dashboards see the full series set.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		DomainEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "studygroup_domain_events_total", Help: "Committed domain events by type"},
			[]string{"type"},
		),
		Confirmations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "studygroup_confirmations_total", Help: "Delete confirmations by kind and outcome"},
			[]string{"kind", "outcome"},
		),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "studygroup_http_requests_total", Help: "HTTP requests by route and status"},
			[]string{"method", "route", "status"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studygroup_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		gatherer: reg,
	}

	reg.MustRegister(m.DomainEvents, m.Confirmations, m.Requests, m.Latency)

	for _, typ := range events.Types() {
		m.DomainEvents.WithLabelValues(typ)
	}

	return m
}

// HandleEvent implements events.EventHandler.
func (m *Metrics) HandleEvent(_ context.Context, event *events.DomainEvent) error {
	m.DomainEvents.WithLabelValues(event.Type).Inc()
	return nil
}

// ObserveConfirmation counts a confirmation outcome, one of the
// confirm.Outcome constants.
func (m *Metrics) ObserveConfirmation(kind, outcome string) {
	m.Confirmations.WithLabelValues(kind, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by the chi route
// pattern, so path parameters do not explode the series count.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.Latency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
