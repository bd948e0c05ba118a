package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reviews/internal/metrics"
)

// Metrics records request counts and latency by route template, so /:id
// stays one series regardless of the id requested.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo's error handler write the response first
				c.Error(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.ObserveRequest(c.Request().Method, route, c.Response().Status, time.Since(start))
			return nil
		}
	}
}
