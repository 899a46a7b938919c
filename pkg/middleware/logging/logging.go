// Package logging provides request logging middleware.
package logging

import (
	"strings"
	"time"

	"github.com/pytogo/website/pkg/middleware"
	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/server/router"
)

// Config configures request logging middleware behavior.
type Config struct {
	Enabled              bool
	LogStart             bool
	ExcludedPathPrefixes []string
}

// DefaultConfig returns default request logging behavior.
func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		LogStart:             false,
		ExcludedPathPrefixes: []string{"/static/", "/health"},
	}
}

// Logging creates middleware with default configuration.
func Logging(log logger.Logger) router.MiddlewareFunc {
	return WithConfig(log, DefaultConfig())
}

// WithConfig creates middleware that logs HTTP requests and responses.
func WithConfig(log logger.Logger, cfg Config) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if !cfg.Enabled || excluded(cfg.ExcludedPathPrefixes, c.Request().URL.Path) {
				return next(c)
			}

			start := time.Now()
			req := c.Request()
			requestID, _ := req.Context().Value(middleware.RequestIDKey).(string)

			if cfg.LogStart {
				log.Info("request started",
					"request_id", requestID,
					"method", req.Method,
					"path", req.URL.Path,
					"remote_addr", req.RemoteAddr,
				)
			}

			err := next(c)
			duration := time.Since(start)
			status := c.Response().Status()

			if err != nil {
				log.Error("request failed",
					"request_id", requestID,
					"method", req.Method,
					"path", req.URL.Path,
					"status", status,
					"duration_ms", duration.Milliseconds(),
					"remote_addr", req.RemoteAddr,
					"error", err,
				)
				return err
			}

			log.Info("request completed",
				"request_id", requestID,
				"method", req.Method,
				"path", req.URL.Path,
				"status", status,
				"duration_ms", duration.Milliseconds(),
				"remote_addr", req.RemoteAddr,
			)
			return nil
		}
	}
}

func excluded(prefixes []string, path string) bool {
	for _, prefix := range prefixes {
		if strings.TrimSpace(prefix) == "" {
			continue
		}
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
