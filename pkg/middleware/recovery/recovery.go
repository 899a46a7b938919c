// Package recovery provides panic recovery middleware.
package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/pytogo/website/pkg/middleware/requestid"
	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/server/router"
)

// Recovery creates middleware that recovers from panics in HTTP handlers.
// It catches panics with defer/recover, logs the panic with stack trace,
// and returns HTTP 500 with an error response.
func Recovery(log logger.Logger) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			defer func() {
				if r := recover(); r != nil {
					requestID := requestid.GetRequestID(c.Request().Context())

					log.Error("panic recovered",
						"request_id", requestID,
						"panic", r,
						"stack", string(debug.Stack()),
					)

					if !c.Response().Written() {
						errorResponse := map[string]interface{}{
							"error":      "internal_server_error",
							"message":    "an unexpected error occurred",
							"request_id": requestID,
						}
						if err := c.JSON(http.StatusInternalServerError, errorResponse); err != nil {
							log.Error("failed to send error response",
								"request_id", requestID,
								"error", err,
							)
						}
					}
				}
			}()

			return next(c)
		}
	}
}
