// Package tracing provides OpenTelemetry tracing middleware.
package tracing

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/pytogo/website/pkg/middleware/requestid"
	"github.com/pytogo/website/pkg/server/router"
)

// Config holds configuration for the tracing middleware.
type Config struct {
	// TracerName identifies the tracer (e.g., "http-server")
	TracerName string

	// SpanNameFormatter formats the span name from the request.
	// If nil, defaults to "HTTP {method} {path}".
	SpanNameFormatter func(router.Context) string

	// ExcludedPathPrefixes disables tracing for matching path prefixes.
	ExcludedPathPrefixes []string
}

// Tracing creates middleware that adds OpenTelemetry distributed tracing to
// HTTP requests. It creates a span for each request, propagates trace context
// from incoming headers, and includes request ID and HTTP attributes.
func Tracing(cfg Config) router.MiddlewareFunc {
	if cfg.TracerName == "" {
		cfg.TracerName = "http-server"
	}
	if cfg.SpanNameFormatter == nil {
		cfg.SpanNameFormatter = defaultSpanNameFormatter
	}

	tracer := otel.Tracer(cfg.TracerName)
	propagator := otel.GetTextMapPropagator()

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			req := c.Request()
			if excluded(cfg.ExcludedPathPrefixes, req.URL.Path) {
				return next(c)
			}

			ctx := propagator.Extract(req.Context(), propagation.HeaderCarrier(req.Header))

			spanName := cfg.SpanNameFormatter(c)
			ctx, span := tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", req.Method),
				attribute.String("http.url", req.URL.String()),
				attribute.String("http.host", req.Host),
				attribute.String("http.target", req.URL.Path),
				attribute.String("http.user_agent", req.UserAgent()),
				attribute.String("http.remote_addr", req.RemoteAddr),
			)

			if requestID := requestid.GetRequestID(req.Context()); requestID != "" {
				span.SetAttributes(attribute.String("request.id", requestID))
			}

			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return err
			}

			status := c.Response().Status()
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= 500 {
				span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
			} else {
				span.SetStatus(codes.Ok, "")
			}

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

// defaultSpanNameFormatter creates a span name from HTTP method and path.
func defaultSpanNameFormatter(c router.Context) string {
	return fmt.Sprintf("HTTP %s %s", c.Request().Method, c.Request().URL.Path)
}

// PropagateTraceContext injects trace context into outgoing HTTP request
// headers, for HTTP calls to other services.
func PropagateTraceContext(ctx context.Context, headers map[string]string) {
	propagator := otel.GetTextMapPropagator()
	carrier := propagation.MapCarrier(headers)
	propagator.Inject(ctx, carrier)
}
