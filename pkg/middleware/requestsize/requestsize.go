// Package requestsize caps the request body size so oversized form
// submissions are rejected before they reach a handler.
package requestsize

import (
	"errors"
	"net/http"

	"github.com/pytogo/website/pkg/server/router"
)

// Middleware enforces a maximum request body size in bytes. A
// non-positive maxBytes disables the check.
func Middleware(maxBytes int64) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if maxBytes <= 0 {
				return next(c)
			}

			req := c.Request()
			if req == nil || req.Body == nil {
				return next(c)
			}

			// Declared Content-Length over the cap short-circuits.
			if req.ContentLength > maxBytes {
				return payloadTooLarge(c)
			}

			req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBytes)
			c.SetRequest(req)

			err := next(c)
			if err == nil {
				return nil
			}

			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) && !c.Response().Written() {
				return payloadTooLarge(c)
			}
			return err
		}
	}
}

func payloadTooLarge(c router.Context) error {
	return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{
		"error": "request_too_large",
	})
}
