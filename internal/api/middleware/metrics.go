// Package middleware provides Echo middleware for catalog-browser.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/catalog-browser/internal/metrics"
)

// unmatchedPath labels requests that matched no route, keeping scanners
// from creating one series per probed URL.
const unmatchedPath = "unmatched"

// metricsSkipPaths are excluded from the request histogram and counter.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
	"/readyz":  {},
}

// healthGauges maps probe paths to their 0/1 gauge.
var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and status
// labelled by route template. Probe paths update up/down gauges instead.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Commit the error response so the recorded status is final.
				c.Error(err)
			}

			path := c.Path()
			if path == "" || path == "/*" {
				path = unmatchedPath
			}

			if _, skip := metricsSkipPaths[path]; skip {
				updateHealthGauge(path, c.Response().Status)
				return err
			}

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

func updateHealthGauge(path string, status int) {
	gauge, ok := healthGauges[path]
	if !ok {
		return
	}

	if status >= 200 && status < 300 {
		gauge.Set(1)
	} else {
		gauge.Set(0)
	}
}
