package di

import (
	"fmt"

	"FinBoard/internal/domain/repository"
	"FinBoard/internal/handler/api"
	icache "FinBoard/internal/service/cache"
	"FinBoard/internal/service/marketdata"
	"FinBoard/internal/service/ratelimit"
	"FinBoard/internal/usecase"
	pkgcache "FinBoard/pkg/cache"
	"FinBoard/pkg/config"
	xlogger "FinBoard/pkg/logger"
	"FinBoard/pkg/metrics"
	"FinBoard/pkg/server"
)

const errorCollectorCapacity = 256

// ProvideErrorCollector creates the in-memory error aggregator backing
// the /api/system/errors endpoint.
func ProvideErrorCollector() *xlogger.ErrorCollector {
	return xlogger.NewErrorCollector(errorCollectorCapacity)
}

// ProvideLogger creates the application logger with the error collector
// attached so error-level entries surface over HTTP.
func ProvideLogger(cfg *config.Config, collector *xlogger.ErrorCollector) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.WithCollector(collector), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideResponseCache creates the serialized-response cache. Memory by
// default; Redis-backed layered cache when configured.
func ProvideResponseCache(cfg *config.Config, logger *xlogger.Logger) pkgcache.Service {
	if cfg.Cache.Redis.Enabled {
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
			pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err == nil {
			return pkgcache.NewLayeredCache(rc)
		}
		logger.Warn("redis unavailable, falling back to memory cache", xlogger.Error(err))
	}
	return pkgcache.NewMemoryCache()
}

// ProvideLimiter creates the per-host token bucket limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideSeriesSource creates the chart API client.
func ProvideSeriesSource(cfg *config.Config, limiter *ratelimit.Limiter, logger *xlogger.Logger) repository.SeriesSource {
	return marketdata.New(
		cfg.Market.BaseURL,
		cfg.Market.Timeout,
		limiter,
		cfg.Market.RatePerSec,
		cfg.Market.Burst,
		logger,
	)
}

// ProvideSnapshotCache creates the TTL cache holding the transformed frame.
func ProvideSnapshotCache(cfg *config.Config) *icache.SnapshotCache {
	return icache.NewSnapshotCache(cfg.Cache.SnapshotTTL)
}

// ProvidePipeline creates the ETL pipeline.
func ProvidePipeline(cfg *config.Config) *usecase.Pipeline {
	return usecase.NewPipeline(cfg)
}

// ProvideDashboard creates the dashboard use case.
func ProvideDashboard(
	cfg *config.Config,
	source repository.SeriesSource,
	pipeline *usecase.Pipeline,
	snapshots *icache.SnapshotCache,
	m repository.Metrics,
	logger *xlogger.Logger,
) *usecase.Dashboard {
	return usecase.NewDashboard(cfg, source, pipeline, snapshots, m, logger)
}

// ProvideHandler creates the Echo HTTP handler.
func ProvideHandler(
	cfg *config.Config,
	logger *xlogger.Logger,
	collector *xlogger.ErrorCollector,
	dash *usecase.Dashboard,
	respCache pkgcache.Service,
) *api.DashboardHandler {
	return api.NewDashboardHandler(logger, collector, dash, respCache, cfg.Cache.ResponseTTL)
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, logger *xlogger.Logger, handler *api.DashboardHandler) *server.App {
	return server.New(cfg, logger, handler)
}
