//go:build wireinject
// +build wireinject

package di

import (
	"MandiPredict/pkg/config"
	"MandiPredict/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Model registry and inference
		ProvideRegistry,
		ProvideModelLoader,
		ProvideModelCache,
		ProvideFeatureBuilder,

		// Optional infrastructure
		ProvideResponseCache,
		ProvideHistorySink,

		// Use case and HTTP surface
		ProvidePredictionService,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
