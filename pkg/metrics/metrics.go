package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace      = "mediagateway"
	unmatchedRoute = "unmatched"
)

// Metrics holds the gateway's Prometheus collectors on a private registry,
// so tests and multiple servers in one process never collide.
type Metrics struct {
	reg         *prometheus.Registry
	inflight    prometheus.Gauge
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	uploadBytes prometheus.Counter
	streamBytes prometheus.Counter
	aborted     prometheus.Counter
}

// New creates a Metrics instance with a fresh registry and registers collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of inflight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests processed, partitioned by method, route and status code.",
		}, []string{"method", "route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Histogram of latencies for HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "upload_bytes_total",
			Help:      "Bytes handed to the object store by successful uploads.",
		}),
		streamBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "stream_bytes_total",
			Help:      "Bytes relayed from the object store to clients.",
		}),
		aborted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "stream_aborted_total",
			Help:      "Streams cut short by a client disconnect or an upstream read failure.",
		}),
	}

	m.reg.MustRegister(m.inflight, m.requests, m.latency, m.uploadBytes, m.streamBytes, m.aborted)

	return m
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
}

func (m *Metrics) AddUploadBytes(n int64) {
	if n > 0 {
		m.uploadBytes.Add(float64(n))
	}
}

func (m *Metrics) AddStreamBytes(n int64) {
	if n > 0 {
		m.streamBytes.Add(float64(n))
	}
}

func (m *Metrics) IncStreamAborted() {
	m.aborted.Inc()
}

// Middleware tracks inflight requests, request counts and latency.
// Errors are handed to the echo error handler here, so the recorded status is
// the one the client receives, and are not returned up the chain.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.inflight.Inc()
			defer m.inflight.Dec()

			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			code := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			m.requests.WithLabelValues(method, route, code).Inc()
			m.latency.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}
