package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"session-service/app/metrics"
)

// Metrics records request counts, durations and in-flight gauge for
// every handled request. The metrics endpoint itself is skipped.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == "/metrics" {
				return next(c)
			}

			done := metrics.RequestStarted()
			defer done()

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}

			// use the route pattern, not the raw path, to bound cardinality
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			metrics.ObserveRequest(c.Request().Method, path, status, time.Since(start))

			return err
		}
	}
}
