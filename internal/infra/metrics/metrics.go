// Package metrics exposes Prometheus instruments for the debate service.
package metrics

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"debate-bot/internal/domain"
)

const namespace = "debatebot"

// Metrics owns a private registry so tests and multiple servers never collide
// on the global one.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	EventsTotal         *prometheus.CounterVec
	ExchangesTotal      *prometheus.CounterVec
	ChatErrorsTotal     *prometheus.CounterVec
	SweepsTotal         *prometheus.CounterVec
}

// New creates the instruments plus the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		EventsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Domain events observed on the event bus",
			},
			[]string{"type"},
		),
		ExchangesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exchanges_total",
				Help:      "User/bot exchanges by persona",
			},
			[]string{"personality"},
		),
		ChatErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_errors_total",
				Help:      "Failed chat turns by error code and transport",
			},
			[]string{"transport", "code"},
		),
		SweepsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retention_sweeps_total",
				Help:      "Retention sweeps by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// GaugeFunc registers a gauge whose value is sampled at scrape time.
func (m *Metrics) GaugeFunc(name, help string, fn func() float64) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn)
}

// ObserveChatError counts a failed turn.
func (m *Metrics) ObserveChatError(transport string, err error) {
	m.ChatErrorsTotal.WithLabelValues(transport, string(domain.ErrorCodeOf(err))).Inc()
}

// ObserveSweep counts one retention sweep.
func (m *Metrics) ObserveSweep(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.SweepsTotal.WithLabelValues(outcome).Inc()
}

// Subscribe counts every event on bus and, for exchange events, the persona
// that answered. It returns the unsubscribe function.
func (m *Metrics) Subscribe(bus domain.EventBus) func() {
	return bus.SubscribeAll(func(_ context.Context, e domain.Event) {
		m.EventsTotal.WithLabelValues(string(e.Type)).Inc()
		if e.Type != domain.EventConversationStarted && e.Type != domain.EventDebateContinued {
			return
		}
		var p domain.ExchangePayload
		if err := json.Unmarshal(e.Payload, &p); err != nil || p.Personality == "" {
			return
		}
		m.ExchangesTotal.WithLabelValues(string(p.Personality)).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if w.status == 0 {
		w.status = http.StatusSwitchingProtocols
	}
	return http.NewResponseController(w.ResponseWriter).Hijack()
}

// Middleware records request counts and latency labelled by the chi route
// pattern, so ids in paths do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
