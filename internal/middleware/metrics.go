package middleware

import (
	"time"

	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// Metrics records request counts and latencies per route. The route
// template is used rather than the raw path so IDs do not explode the
// label space.
func Metrics(recorder services.MetricsRecorderInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			recorder.RecordHTTPRequest(
				c.Request().Method,
				path,
				c.Response().Status,
				time.Since(start),
			)
			return err
		}
	}
}
