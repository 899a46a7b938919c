package server

import (
	"context"

	"github.com/pytogo/website/pkg/config"
	"github.com/pytogo/website/pkg/i18n"
	"github.com/pytogo/website/pkg/middleware/locale"
	"github.com/pytogo/website/pkg/middleware/logging"
	"github.com/pytogo/website/pkg/middleware/metrics"
	"github.com/pytogo/website/pkg/middleware/recovery"
	"github.com/pytogo/website/pkg/middleware/requestid"
	"github.com/pytogo/website/pkg/middleware/requestsize"
	"github.com/pytogo/website/pkg/middleware/securityheaders"
	"github.com/pytogo/website/pkg/middleware/tracing"
	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/server/router"
)

// PublicServer wraps Server for website traffic.
//
// The global middleware stack is applied in the following order:
//  1. Request ID - generates/extracts request IDs for correlation
//  2. Logging - logs HTTP requests with structured data
//  3. Recovery - catches panics and returns 500 errors
//  4. Metrics - records Prometheus metrics for requests
//  5. Security headers - CSP and friends on every response
//  6. Request size - caps request bodies at http.max_request_size
//  7. Tracing - emits OpenTelemetry spans (when enabled)
//  8. Locale - resolves the display language for every page
//
// Rate limiting is added per-route on the form endpoints.
type PublicServer struct {
	*Server
}

// NewPublicServer creates the public website server with its middleware
// stack applied. Routes are registered by the caller on Router().
func NewPublicServer(
	cfg config.HTTPConfig,
	obsCfg config.ObservabilityConfig,
	i18nCfg config.I18nConfig,
	catalog *i18n.Catalog,
	r router.Router,
	log logger.Logger,
) *PublicServer {
	loggingCfg := logging.Config{
		Enabled:              obsCfg.RequestLogging.Enabled,
		LogStart:             obsCfg.RequestLogging.LogStart,
		ExcludedPathPrefixes: obsCfg.RequestLogging.ExcludedPathPrefixes,
	}

	localeCfg := locale.DefaultConfig()
	if i18nCfg.CookieName != "" {
		localeCfg.CookieName = i18nCfg.CookieName
	}

	middlewares := []router.MiddlewareFunc{
		requestid.RequestID(),
		logging.WithConfig(log, loggingCfg),
		recovery.Recovery(log),
		metrics.Metrics(),
		securityheaders.Middleware(securityheaders.DefaultConfig()),
		requestsize.Middleware(cfg.MaxRequestSize),
	}
	if obsCfg.TracingEnabled {
		middlewares = append(middlewares, tracing.Tracing(tracing.Config{}))
	}
	middlewares = append(middlewares, locale.Middleware(catalog, localeCfg))
	r.Use(middlewares...)

	serverCfg := Config{
		Port:         cfg.Port,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return &PublicServer{Server: NewServer(serverCfg, r, log)}
}

// Start starts the public server.
func (s *PublicServer) Start(ctx context.Context) error {
	return s.Server.Start(ctx)
}

// Shutdown gracefully shuts down the public server.
func (s *PublicServer) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}
