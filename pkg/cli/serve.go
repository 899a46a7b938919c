package cli

import (
	"context"
	"fmt"

	"github.com/pytogo/website/pkg/config"
	"github.com/pytogo/website/pkg/email"
	"github.com/pytogo/website/pkg/forms"
	"github.com/pytogo/website/pkg/health"
	"github.com/pytogo/website/pkg/i18n/locales"
	"github.com/pytogo/website/pkg/listings"
	"github.com/pytogo/website/pkg/middleware/ratelimit"
	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/observability/metrics"
	"github.com/pytogo/website/pkg/observability/tracing"
	"github.com/pytogo/website/pkg/server"
	routerfactory "github.com/pytogo/website/pkg/server/router/factory"
	"github.com/pytogo/website/pkg/store"
	"github.com/pytogo/website/pkg/version"
	"github.com/pytogo/website/pkg/web"
)

// runServe assembles the application and runs the public and management
// servers until the context is cancelled.
func runServe(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	info := version.Current(cfg.Service.Name)
	log.Info("starting service",
		"service", info.Service,
		"version", info.Version,
		"environment", cfg.Service.Environment,
	)

	catalog, err := locales.Load()
	if err != nil {
		return fmt.Errorf("failed to load locale catalog: %w", err)
	}

	tables, err := store.NewTableStore(cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to create table store: %w", err)
	}
	defer func() {
		if err := tables.Close(); err != nil {
			log.Warn("failed to close table store", "error", err)
		}
	}()

	cache, err := listings.NewCacheStore(cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to create listings cache: %w", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Warn("failed to close listings cache", "error", err)
		}
	}()
	listingSvc := listings.NewService(tables, cache, cfg.Cache.TTL, log)

	submissions := forms.NewService(tables, cfg.Forms, log)
	provider, err := email.NewProvider(cfg.Email, log)
	if err != nil {
		return fmt.Errorf("failed to create email provider: %w", err)
	}
	if provider != nil {
		defer func() {
			if err := provider.Close(); err != nil {
				log.Warn("failed to close email provider", "error", err)
			}
		}()
		submissions = submissions.WithNotifier(
			email.NewSubmissionNotifier(provider, cfg.Email.NotifyTo, log),
		)
	}

	tracerProvider, err := tracing.NewTracerProvider(ctx, tracing.TracerConfig{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: info.Version,
		Environment:    cfg.Service.Environment,
		Endpoint:       cfg.Observability.TracingEndpoint,
		SampleRate:     cfg.Observability.TracingSampleRate,
		Enabled:        cfg.Observability.TracingEnabled,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Warn("failed to shut down tracer provider", "error", err)
		}
	}()

	limiter, err := newRateLimiter(cfg.RateLimit, log)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to build page renderer: %w", err)
	}

	publicRouter, err := routerfactory.NewRouter(cfg.RouterType)
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}
	publicSrv := server.NewPublicServer(cfg.HTTP, cfg.Observability, cfg.I18n, catalog, publicRouter, log)

	handlers := web.NewHandlers(renderer, submissions, listingSvc, catalog, cfg.I18n, log)
	if err := web.RegisterRoutes(publicSrv.Router(), handlers, limiter); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	starters := []func(context.Context) error{publicSrv.Start}

	if cfg.Management.Enabled {
		mgmtRouter, err := routerfactory.NewRouter(cfg.RouterType)
		if err != nil {
			return fmt.Errorf("failed to create management router: %w", err)
		}

		healthRegistry := health.NewRegistry()
		healthRegistry.Register(health.NewStorageChecker(tables))

		mgmtSrv := server.NewManagementServer(
			cfg.Management,
			cfg.Service.Name,
			mgmtRouter,
			log,
			healthRegistry,
			metrics.NewRegistry(),
		)
		starters = append(starters, mgmtSrv.Start)
	}

	return runServers(ctx, starters)
}

// runServers starts every server and blocks until all have stopped.
// The first failure cancels the rest.
func runServers(ctx context.Context, starters []func(context.Context) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(starters))
	for _, start := range starters {
		go func(start func(context.Context) error) {
			errCh <- start(runCtx)
		}(start)
	}

	var firstErr error
	for range starters {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	return firstErr
}

func newRateLimiter(cfg config.RateLimitConfig, log logger.Logger) (ratelimit.RateLimiter, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Type {
	case "redis":
		return ratelimit.NewRedisRateLimiter(cfg.Redis, cfg.Window, cfg.RequestsPerSecond, cfg.Burst, log)
	default:
		return ratelimit.NewTokenBucketLimiter(cfg.RequestsPerSecond, cfg.Burst), nil
	}
}
