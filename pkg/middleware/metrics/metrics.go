// Package metrics provides HTTP metrics middleware.
package metrics

import (
	"time"

	"github.com/pytogo/website/pkg/observability/metrics"
	"github.com/pytogo/website/pkg/server/router"
)

// Metrics creates middleware that records Prometheus metrics for HTTP requests:
// request duration histogram, request counter and in-flight gauge.
func Metrics() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			metrics.IncrementInFlight()
			defer metrics.DecrementInFlight()

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			metrics.RecordHTTPMetrics(
				c.Request().Method,
				c.Request().URL.Path,
				c.Response().Status(),
				duration,
			)

			return err
		}
	}
}
