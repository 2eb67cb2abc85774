package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "task-dashboard.com/task-dashboard/internal/errors"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "task_dashboard",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "task_dashboard",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	rateLimitAllowed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "task_dashboard",
		Subsystem: "rate_limiter",
		Name:      "requests_total",
		Help:      "Requests admitted by the rate limiter",
	}, []string{"route"})

	rateLimitBlocked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "task_dashboard",
		Subsystem: "rate_limiter",
		Name:      "blocked_total",
		Help:      "Requests rejected by the rate limiter",
	}, []string{"route"})

	rateLimitErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "task_dashboard",
		Subsystem: "rate_limiter",
		Name:      "backend_errors_total",
		Help:      "Counter backend failures that let a request through",
	})
)

func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			method := c.Request().Method
			httpLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			httpRequests.WithLabelValues(method, route, strconv.Itoa(responseStatus(c, err))).Inc()
			return err
		}
	}
}

// responseStatus reports the status the error handler will write for err.
func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return apperrors.StatusCode(err)
}
