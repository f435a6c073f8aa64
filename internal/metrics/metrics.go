package metrics

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics exposes application-level prometheus instruments.
type Metrics struct {
	registry *prometheus.Registry

	quotesComputed   *prometheus.CounterVec
	engineErrors     *prometheus.CounterVec
	rateLimitDenied  *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDurationSecs *prometheus.HistogramVec
}

// New registers the instrument set on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		quotesComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promusic_quotes_computed_total",
			Help: "Quotes computed, by territory and category.",
		}, []string{"territory", "category"}),
		engineErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promusic_engine_errors_total",
			Help: "Engine failures, by error code.",
		}, []string{"code"}),
		rateLimitDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promusic_rate_limit_denied_total",
			Help: "Requests denied by the quote rate limiter.",
		}, []string{"endpoint"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promusic_http_requests_total",
			Help: "HTTP requests, by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDurationSecs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "promusic_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	registry.MustRegister(
		m.quotesComputed,
		m.engineErrors,
		m.rateLimitDenied,
		m.httpRequests,
		m.httpDurationSecs,
	)
	return m
}

// Registry returns the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// RecordQuoteComputed increments quote counts.
func (m *Metrics) RecordQuoteComputed(territory, category string) {
	if m == nil {
		return
	}
	m.quotesComputed.WithLabelValues(normalizeLabel(territory), normalizeLabel(category)).Inc()
}

// RecordEngineError increments engine failure counts.
func (m *Metrics) RecordEngineError(code string) {
	if m == nil {
		return
	}
	m.engineErrors.WithLabelValues(normalizeLabel(code)).Inc()
}

// RecordRateLimitDenied increments limiter denial counts.
func (m *Metrics) RecordRateLimitDenied(endpoint string) {
	if m == nil {
		return
	}
	m.rateLimitDenied.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

// GinMiddleware records per-request counters and latency.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := strings.TrimSpace(strings.ToLower(statusClass(c.Writer.Status())))

		m.httpRequests.WithLabelValues(route, method, status).Inc()
		m.httpDurationSecs.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return value
}
