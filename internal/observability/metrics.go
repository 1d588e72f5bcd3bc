package observability

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for the portal.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	navigations     *prometheus.CounterVec
	liveConnections prometheus.Gauge
	liveRejected    *prometheus.CounterVec
}

// NewMetrics initialises the registry and the portal metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admission_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admission_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	navigations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admission_listing_navigations_total",
		Help: "URL replace navigations pushed to listing views, by store operation.",
	}, []string{"op"})
	connections := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "admission_listing_live_connections",
		Help: "Open live listing channels.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admission_listing_events_rejected_total",
		Help: "Grid events rejected as undecodable or invalid.",
	}, []string{"reason"})
	registry.MustRegister(requests, duration, navigations, connections, rejected)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		navigations:     navigations,
		liveConnections: connections,
		liveRejected:    rejected,
	}
}

// Handler returns the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request count and latency per route.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Navigation counts a URL replace written by op (set, delete or reset).
func (m *Metrics) Navigation(op string) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(op).Inc()
}

// LiveOpened tracks a new live listing channel.
func (m *Metrics) LiveOpened() {
	if m == nil {
		return
	}
	m.liveConnections.Inc()
}

// LiveClosed tracks a closed live listing channel.
func (m *Metrics) LiveClosed() {
	if m == nil {
		return
	}
	m.liveConnections.Dec()
}

// EventRejected counts a grid event that could not be applied.
func (m *Metrics) EventRejected(reason string) {
	if m == nil {
		return
	}
	m.liveRejected.WithLabelValues(reason).Inc()
}

// Registerer exposes the registry for custom metrics.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack lets websocket upgrades pass through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("observability: response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
