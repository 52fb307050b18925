package di

import (
	"context"
	"fmt"
	"time"

	"AgriPulse/internal/domain/repository"
	domsvc "AgriPulse/internal/domain/service"
	"AgriPulse/internal/handler/api"
	mid "AgriPulse/internal/middleware"
	internalrepo "AgriPulse/internal/repository"
	icache "AgriPulse/internal/service/cache"
	"AgriPulse/internal/service/ratelimit"
	"AgriPulse/internal/service/sensors"
	"AgriPulse/internal/services/agriyield"
	"AgriPulse/internal/services/carbon"
	"AgriPulse/internal/services/classifier"
	"AgriPulse/internal/services/irrigation"
	"AgriPulse/internal/services/mandi"
	"AgriPulse/internal/services/market"
	"AgriPulse/internal/services/weather"
	"AgriPulse/internal/usecase"
	pkgcache "AgriPulse/pkg/cache"
	pkgch "AgriPulse/pkg/clickhouse"
	"AgriPulse/pkg/config"
	xhttp "AgriPulse/pkg/http"
	pkgkafka "AgriPulse/pkg/kafka"
	applogger "AgriPulse/pkg/logger"
	"AgriPulse/pkg/metrics"
	pkgqueue "AgriPulse/pkg/queue"
	"AgriPulse/pkg/server"

	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS agripulse",
		"CREATE TABLE IF NOT EXISTS agripulse.soil_readings (ts DateTime, field String, crop String, moisture Float64, source String) ENGINE=MergeTree ORDER BY (field, ts)",
		"CREATE TABLE IF NOT EXISTS agripulse.mandi_prices (crop String, day Date, modal_price Float64) ENGINE=ReplacingMergeTree ORDER BY (crop, day)",
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideReadingStorage creates ClickHouse storage for soil readings.
func ProvideReadingStorage(chClient *pkgch.Client, cfg *config.Config) repository.Storage {
	return internalrepo.NewClickHouseReadingStore(chClient, cfg.ClickHouse.Database+".soil_readings")
}

// ProvidePriceStore creates ClickHouse storage for daily mandi prices.
func ProvidePriceStore(chClient *pkgch.Client, cfg *config.Config) repository.PriceStore {
	return internalrepo.NewClickHousePriceStore(chClient, cfg.ClickHouse.Database+".mandi_prices")
}

// ProvideReadingPublisher creates Kafka publisher repository.
func ProvideReadingPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaReadingsHandler registers handler for the readings topic.
func ProvideKafkaReadingsHandler(store repository.Storage, metrics repository.Metrics, cfg *config.Config) *usecase.KafkaReadingsHandler {
	return usecase.NewKafkaReadingsHandler(cfg.Kafka.Topic, store, metrics)
}

// ProvideSensorStream creates the field gateway WebSocket stream.
func ProvideSensorStream(cfg *config.Config) repository.SensorStream {
	return sensors.New(
		cfg.Sensors.Token,
		cfg.Sensors.WebSocketURL,
		cfg.Sensors.Fields,
		cfg.Sensors.ReconnectDelay,
		cfg.Sensors.PingInterval,
	)
}

// ProvideReadingProcessor creates the reading processor use case.
func ProvideReadingProcessor(
	pub repository.Publisher,
	store repository.Storage,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.ReadingProcessor {
	return usecase.NewReadingProcessor(
		pub,
		store,
		metrics,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideReadingCollector creates the reading collector use case.
func ProvideReadingCollector(
	stream repository.SensorStream,
	processor *usecase.ReadingProcessor,
	metrics repository.Metrics,
) *usecase.ReadingCollector {
	// Build middleware pipeline between WebSocket and the backend.
	// Soil moisture moves slowly; a small per-field budget is plenty.
	pipe := mid.NewRealtimePipeline(processor, metrics,
		mid.WithMaxRPS(5),
		mid.WithBufferSize(2000),
	)
	return usecase.NewReadingCollector(stream, processor, metrics, pipe)
}

// ProvideCacheService picks the advisory cache backend: layered Redis when
// configured, in-process memory otherwise.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}
	redisCache, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Redis.Host),
		pkgcache.WithRedisPort(cfg.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(redisCache), nil
}

// ProvideHTTPClient creates the shared outbound HTTP client.
func ProvideHTTPClient() *xhttp.Client {
	return xhttp.NewClient()
}

// ProvideWeatherProvider assembles the weather source chain: live API
// first, then a sample file, then the built-in static fallback.
func ProvideWeatherProvider(cfg *config.Config, client *xhttp.Client, l *applogger.Logger) domsvc.WeatherProvider {
	var sources []weather.DataSource
	if cfg.Weather.APIKey != "" {
		sources = append(sources, weather.NewOpenWeatherClient(weather.OpenWeatherConfig{
			APIKey:  cfg.Weather.APIKey,
			BaseURL: cfg.Weather.BaseURL,
			Lat:     cfg.Weather.Lat,
			Lon:     cfg.Weather.Lon,
		}, client))
	}
	if cfg.Weather.SamplePath != "" {
		sources = append(sources, weather.NewSampleSource(cfg.Weather.SamplePath))
	}
	sources = append(sources, weather.NewStaticSource())
	return weather.NewProvider(l, sources...)
}

// ProvideMandiProvider assembles the price source chain: government API,
// then previously stored prices, then a sample file, then static data.
func ProvideMandiProvider(cfg *config.Config, client *xhttp.Client, store repository.PriceStore, l *applogger.Logger) domsvc.PriceProvider {
	var sources []mandi.DataSource
	if cfg.Mandi.APIKey != "" {
		sources = append(sources, mandi.NewClient(mandi.Config{
			APIKey:     cfg.Mandi.APIKey,
			BaseURL:    cfg.Mandi.BaseURL,
			Limit:      cfg.Mandi.Limit,
			RatePerMin: cfg.Mandi.RatePerMin,
		}, client, ratelimit.New()))
	}
	sources = append(sources, mandi.NewStoreSource(store, 0))
	if cfg.Mandi.SamplePath != "" {
		sources = append(sources, mandi.NewSampleSource(cfg.Mandi.SamplePath))
	}
	sources = append(sources, mandi.NewStaticSource())
	return mandi.NewProvider(l, store, sources...)
}

// ProvideForecastUseCase creates the market forecast use case.
func ProvideForecastUseCase(prices domsvc.PriceProvider, cacheSvc pkgcache.Service, cfg *config.Config, l *applogger.Logger) *usecase.ForecastUseCase {
	synth := market.NewSynthesizer(market.SynthTunables{}, nil)
	insight := market.NewInsightEngine(market.InsightTunables{})
	return usecase.NewForecastUseCase(prices, synth, insight, cacheSvc, cfg.Mandi.CacheTTL, l)
}

// ProvideIrrigationEngine creates the irrigation decision engine.
func ProvideIrrigationEngine(weatherProvider domsvc.WeatherProvider, cfg *config.Config) *irrigation.Engine {
	return irrigation.NewEngine(weatherProvider, nil, irrigation.Tunables{
		FallbackThresholdPct: cfg.Irrigation.FallbackThresholdPct,
		LowRainMm:            cfg.Irrigation.LowRainMm,
		RainWindowDays:       cfg.Irrigation.RainWindowDays,
		ETLossMinPct:         cfg.Irrigation.ETLossMinPct,
		ETLossMaxPct:         cfg.Irrigation.ETLossMaxPct,
		RainAbsorption:       cfg.Irrigation.RainAbsorption,
		BoostPct:             cfg.Irrigation.BoostPct,
		ScheduleDays:         cfg.Irrigation.ScheduleDays,
	})
}

// ProvideIrrigationSimulator creates the weekly schedule simulator.
func ProvideIrrigationSimulator(engine *irrigation.Engine) *irrigation.Simulator {
	return irrigation.NewSimulator(engine, nil)
}

// ProvideWeatherUseCase creates the weather use case.
func ProvideWeatherUseCase(provider domsvc.WeatherProvider, cacheSvc pkgcache.Service, cfg *config.Config, l *applogger.Logger) *usecase.WeatherUseCase {
	return usecase.NewWeatherUseCase(provider, cacheSvc, cfg.Weather.CacheTTL, l)
}

// ProvideReadingsUseCase creates the readings query use case.
func ProvideReadingsUseCase(store repository.Storage) *usecase.ReadingsUseCase {
	return usecase.NewReadingsUseCase(store)
}

// ProvideIrrigationUseCase creates the irrigation use case.
func ProvideIrrigationUseCase(
	engine *irrigation.Engine,
	sim *irrigation.Simulator,
	readings *usecase.ReadingsUseCase,
	weatherUC *usecase.WeatherUseCase,
	l *applogger.Logger,
) *usecase.IrrigationUseCase {
	return usecase.NewIrrigationUseCase(engine, sim, readings, weatherUC, l)
}

// ProvideDashboardUseCase creates the dashboard aggregation use case.
func ProvideDashboardUseCase(
	weatherUC *usecase.WeatherUseCase,
	forecastUC *usecase.ForecastUseCase,
	irrigationUC *usecase.IrrigationUseCase,
) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(weatherUC, forecastUC, irrigationUC)
}

// ProvideCarbonEstimator creates the carbon footprint estimator.
func ProvideCarbonEstimator(cfg *config.Config) *carbon.Estimator {
	return carbon.NewEstimator(carbon.Tunables{
		UreaFactor:        cfg.Carbon.UreaFactor,
		DAPFactor:         cfg.Carbon.DAPFactor,
		TractorFactor:     cfg.Carbon.TractorFactor,
		PumpFactor:        cfg.Carbon.PumpFactor,
		DieselFactor:      cfg.Carbon.DieselFactor,
		ElectricityFactor: cfg.Carbon.ElectricityFactor,
		LowThreshold:      cfg.Carbon.LowThreshold,
		MediumThreshold:   cfg.Carbon.MediumThreshold,
		BenchmarkBandPct:  cfg.Carbon.BenchmarkBandPct,
	})
}

// ProvideYieldEstimator creates the yield estimator.
func ProvideYieldEstimator() *agriyield.Estimator {
	return agriyield.NewEstimator()
}

// ProvidePestClassifier creates the pest classifier client.
func ProvidePestClassifier(cfg *config.Config, client *xhttp.Client, l *applogger.Logger) *classifier.Client {
	return classifier.NewClient(classifier.Config{
		Endpoint:      cfg.Classifier.Endpoint,
		APIKey:        cfg.Classifier.APIKey,
		CacheTTL:      cfg.Classifier.CacheTTL,
		MinImageBytes: cfg.Classifier.MinImageBytes,
	}, client, icache.NewTTLCache(), l)
}

// ProvideForecastQueue creates the Redis-backed job queue that keeps
// forecast caches warm. Returns nil when Redis is not configured; the app
// simply runs without background warming.
func ProvideForecastQueue(cfg *config.Config, forecastUC *usecase.ForecastUseCase, l *applogger.Logger) *pkgqueue.RedisQueue {
	if !cfg.Redis.Enabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	job := usecase.NewForecastWarmJob(forecastUC, l)
	return pkgqueue.NewRedisConsumer(l, &pkgqueue.QueueConfig{
		Workers:    1,
		QueueSize:  64,
		RetryLimit: 2,
		RetryDelay: 30 * time.Second,
	}, client, []pkgqueue.Job{job})
}

// ProvideHTTPHandler composes all route groups behind one handler.
func ProvideHTTPHandler(
	l *applogger.Logger,
	forecastUC *usecase.ForecastUseCase,
	weatherUC *usecase.WeatherUseCase,
	irrigationUC *usecase.IrrigationUseCase,
	dashboardUC *usecase.DashboardUseCase,
	readingsUC *usecase.ReadingsUseCase,
	carbonEst *carbon.Estimator,
	yieldEst *agriyield.Estimator,
	pest *classifier.Client,
	cfg *config.Config,
) xhttp.Handler {
	advisory := api.NewAdvisoryEchoHandler(l, forecastUC, weatherUC, irrigationUC, dashboardUC, carbonEst, yieldEst, pest)

	readings := api.NewReadingsHandler(readingsUC)
	readings.SetLogger(l)
	if cfg.Redis.Enabled {
		readings.SetCache(icache.NewRedisCache(icache.RedisConfig{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))
	} else {
		readings.SetCache(icache.NewTTLCache())
	}

	return api.Handlers{advisory, readings}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	collector *usecase.ReadingCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaReadingsHandler,
	chClient *pkgch.Client,
	handler xhttp.Handler,
	warmQueue *pkgqueue.RedisQueue,
) *server.App {
	// Attach hook to consumer: example NoopHook for now; can be replaced via config
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	app := server.New(cfg, collector, consumer, kh, chClient)
	app.SetHTTPHandler(handler)
	app.SetWarmQueue(warmQueue)
	// attach reading processor to app for closing resources via collector
	if collector != nil {
		app.ReadingProc = collector.Processor()
	}
	return app
}
