//go:build wireinject
// +build wireinject

package di

import (
	"FinBoard/pkg/config"
	"FinBoard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideErrorCollector,
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideResponseCache,
		ProvideLimiter,
		ProvideSeriesSource,
		ProvideSnapshotCache,

		// Use cases
		ProvidePipeline,
		ProvideDashboard,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
