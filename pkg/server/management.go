package server

import (
	"context"
	"net/http"
	"time"

	"github.com/pytogo/website/pkg/config"
	"github.com/pytogo/website/pkg/health"
	"github.com/pytogo/website/pkg/middleware/logging"
	"github.com/pytogo/website/pkg/middleware/recovery"
	"github.com/pytogo/website/pkg/middleware/requestid"
	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/observability/metrics"
	"github.com/pytogo/website/pkg/server/router"
	"github.com/pytogo/website/pkg/version"
)

// ManagementServer serves health checks, metrics, and version info on a
// separate port from the public website.
type ManagementServer struct {
	*Server
	healthRegistry  *health.Registry
	metricsRegistry *metrics.Registry
	serviceName     string
}

// NewManagementServer creates a management server with these endpoints:
//   - /health: liveness check, always 200
//   - /ready: readiness check against registered dependencies
//   - /metrics: Prometheus exposition
//   - /version: build metadata
func NewManagementServer(
	cfg config.ManagementConfig,
	serviceName string,
	r router.Router,
	log logger.Logger,
	healthRegistry *health.Registry,
	metricsRegistry *metrics.Registry,
) *ManagementServer {
	r.Use(
		requestid.RequestID(),
		logging.WithConfig(log, logging.DefaultConfig()),
		recovery.Recovery(log),
	)

	serverCfg := Config{
		Port:         cfg.Port,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	mgmt := &ManagementServer{
		Server:          NewServer(serverCfg, r, log),
		healthRegistry:  healthRegistry,
		metricsRegistry: metricsRegistry,
		serviceName:     serviceName,
	}
	mgmt.registerEndpoints(r)
	return mgmt
}

func (s *ManagementServer) registerEndpoints(r router.Router) {
	r.GET("/health", s.handleHealth)
	r.GET("/ready", s.handleReady)
	r.GET("/metrics", s.handleMetrics)
	r.GET("/version", s.handleVersion)
}

// handleHealth is the liveness check. It does not check dependencies.
func (s *ManagementServer) handleHealth(c router.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "healthy",
	})
}

// handleReady verifies all registered dependencies are healthy. Returns
// 503 when any dependency is down.
func (s *ManagementServer) handleReady(c router.Context) error {
	result := s.healthRegistry.Check(c.Request().Context())
	if !result.IsHealthy() {
		return c.JSON(http.StatusServiceUnavailable, result)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *ManagementServer) handleMetrics(c router.Context) error {
	s.metricsRegistry.Handler().ServeHTTP(c.Response(), c.Request())
	return nil
}

func (s *ManagementServer) handleVersion(c router.Context) error {
	return c.JSON(http.StatusOK, version.Current(s.serviceName))
}

// Start starts the management server.
func (s *ManagementServer) Start(ctx context.Context) error {
	return s.Server.Start(ctx)
}

// Shutdown gracefully shuts down the management server.
func (s *ManagementServer) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}
