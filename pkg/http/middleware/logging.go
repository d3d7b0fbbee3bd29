package middleware

import (
	"time"

	applogger "OptionsPull/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one line per HTTP request, keyed by route template.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			l.Info("http request",
				applogger.String("method", req.Method),
				applogger.String("route", routeOf(c)),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", c.Response().Status),
				applogger.Duration("duration_ms", time.Since(start)),
			)
			return nil
		}
	}
}

func routeOf(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return c.Request().URL.Path
}
