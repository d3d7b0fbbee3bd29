package middleware

import (
	"strconv"
	"time"

	applogger "OptionsPull/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds the request collectors; register them once per registry.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        *prometheus.GaugeVec
}

// NewHTTPMetrics creates and registers HTTP collectors with reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				// options requests walk one upstream call per weekday
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
			[]string{"route", "method", "class"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "http_in_flight_requests",
				Help: "Current number of in-flight HTTP requests",
			},
			[]string{"route", "method"},
		),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.inFlight)
	return m
}

// Metrics records request metrics labelled by route template to keep cardinality low.
// Requests slower than slowThreshold are logged as warnings.
func Metrics(m *HTTPMetrics, l *applogger.Logger, slowThreshold time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := routeOf(c)
			method := c.Request().Method

			m.inFlight.WithLabelValues(route, method).Inc()
			defer m.inFlight.WithLabelValues(route, method).Dec()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			code := c.Response().Status
			duration := time.Since(start)
			m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
			m.requestDuration.WithLabelValues(route, method, statusClass(code)).Observe(duration.Seconds())

			if l != nil && slowThreshold > 0 && duration >= slowThreshold {
				l.Warn("http request slow",
					applogger.String("route", route),
					applogger.String("method", method),
					applogger.Int("status", code),
					applogger.Duration("duration_ms", duration),
				)
			}
			return nil
		}
	}
}

func statusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
