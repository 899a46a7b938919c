package requestid

import (
	"context"

	"github.com/google/uuid"
	"github.com/pytogo/website/pkg/middleware"
	"github.com/pytogo/website/pkg/server/router"
)

// RequestIDHeader is the HTTP header name for request ID.
const RequestIDHeader = "X-Request-ID"

// RequestID creates middleware that generates or extracts request IDs.
// It generates a UUID for requests without X-Request-ID header,
// preserves existing X-Request-ID from header,
// and adds request ID to response headers and context.
func RequestID() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			c.Set(string(middleware.RequestIDKey), requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			ctx := context.WithValue(c.Request().Context(), middleware.RequestIDKey, requestID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetRequestID extracts the request ID from a context.
// Returns empty string if no request ID is found.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(middleware.RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
