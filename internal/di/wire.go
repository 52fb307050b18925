//go:build wireinject
// +build wireinject

package di

import (
	"AgriPulse/pkg/config"
	"AgriPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideCacheService,
		ProvideHTTPClient,

		// Repositories (with business logic)
		ProvideReadingStorage,
		ProvidePriceStore,
		ProvideReadingPublisher,
		ProvideSensorStream,

		// Domain services
		ProvideWeatherProvider,
		ProvideMandiProvider,
		ProvideIrrigationEngine,
		ProvideIrrigationSimulator,
		ProvideCarbonEstimator,
		ProvideYieldEstimator,
		ProvidePestClassifier,

		// Use cases
		ProvideReadingProcessor,
		ProvideReadingCollector,
		ProvideKafkaReadingsHandler,
		ProvideReadingsUseCase,
		ProvideForecastUseCase,
		ProvideWeatherUseCase,
		ProvideIrrigationUseCase,
		ProvideDashboardUseCase,

		// Background jobs
		ProvideForecastQueue,

		// HTTP
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
