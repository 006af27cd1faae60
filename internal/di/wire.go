//go:build wireinject
// +build wireinject

package di

import (
	"TradeRadar/pkg/config"
	"TradeRadar/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvideRateLimiter,
		ProvideMarketSource,
		ProvideNotifier,
		ProvidePublisher,
		ProvideStream,

		// Use case
		ProvideRadar,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
