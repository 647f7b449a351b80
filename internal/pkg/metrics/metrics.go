package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pmrmap",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pmrmap",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pmrmap",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Data server metrics
	GeoDataLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pmrmap",
		Subsystem: "geodata",
		Name:      "loads_total",
		Help:      "Total reads of the served geo-data file by outcome",
	}, []string{"outcome"})

	GeoDataLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pmrmap",
		Subsystem: "geodata",
		Name:      "load_duration_seconds",
		Help:      "Duration of reading, reprojecting and encoding the geo-data file",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	// Dashboard metrics
	DashboardLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pmrmap",
		Subsystem: "dashboard",
		Name:      "loads_total",
		Help:      "Total dashboard data loads by outcome",
	}, []string{"outcome"})

	DashboardRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pmrmap",
		Subsystem: "dashboard",
		Name:      "renders_total",
		Help:      "Total dashboard figures rendered by colour field",
	}, []string{"color_by"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeMissing = "missing"
	OutcomeError   = "error"
)

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
