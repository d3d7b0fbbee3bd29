//go:build wireinject
// +build wireinject

package di

import (
	"OptionsPull/pkg/config"
	"OptionsPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,
		ProvideHTTPMetrics,

		// Provider access
		ProvideHTTPClient,
		ProvideMarketData,

		// Use cases
		ProvideOptionsFetcher,
		ProvideOptionsWrangler,

		// Transport
		ProvideHandler,
		ProvideHTTPServer,

		// App
		ProvideApp,
	)
	return nil, nil
}
