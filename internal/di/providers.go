package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"MandiPredict/internal/features"
	"MandiPredict/internal/handler/api"
	"MandiPredict/internal/inference"
	"MandiPredict/internal/registry"
	internalrepo "MandiPredict/internal/repository"
	"MandiPredict/internal/usecase"
	"MandiPredict/pkg/cache"
	pkgch "MandiPredict/pkg/clickhouse"
	"MandiPredict/pkg/config"
	xhttp "MandiPredict/pkg/http"
	pkgkafka "MandiPredict/pkg/kafka"
	"MandiPredict/pkg/logger"
	"MandiPredict/pkg/metrics"
	"MandiPredict/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() usecase.Metrics {
	return metrics.New()
}

// ProvideRegistry scans the model directory and builds the artifact index.
func ProvideRegistry(cfg *config.Config, log *logger.Logger) (*registry.Registry, error) {
	reg := registry.New(cfg.Models.Dir,
		registry.WithExtension(cfg.Models.Extension),
		registry.WithLogger(log),
	)
	if err := reg.Scan(); err != nil {
		return nil, fmt.Errorf("registry scan: %w", err)
	}

	log.Info("model registry ready",
		logger.String("dir", cfg.Models.Dir),
		logger.Int("models", reg.Len()),
	)
	return reg, nil
}

// ProvideModelLoader creates the ONNX runtime loader.
func ProvideModelLoader() inference.Loader {
	return inference.NewONNXLoader()
}

// ProvideModelCache creates the lazy model cache.
func ProvideModelCache(cfg *config.Config, loader inference.Loader, log *logger.Logger) *inference.Cache {
	return inference.NewCache(loader,
		inference.WithCacheLogger(log),
		inference.WithLoadTimeout(cfg.Models.LoadTimeout),
	)
}

// ProvideFeatureBuilder creates the feature vector builder.
func ProvideFeatureBuilder() *features.Builder {
	return features.NewBuilder()
}

// ProvideResponseCache creates the prediction response cache. Returns nil
// when caching is disabled; the service treats a nil cache as a no-op.
func ProvideResponseCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	if cfg.Cache.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewLayeredCache(redisCache), nil
	}

	return cache.NewMemoryCache(), nil
}

// ProvideHistorySink creates the prediction audit sink for the configured
// backend. "none" discards records.
func ProvideHistorySink(cfg *config.Config) (usecase.HistorySink, error) {
	switch cfg.History.Backend {
	case "kafka":
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.History.Kafka.Brokers),
			pkgkafka.WithRequiredAcks(cfg.History.Kafka.RequiredAcks),
			pkgkafka.WithCompression(cfg.History.Kafka.Compression),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}

		topic := cfg.History.Kafka.Topic
		if topic == "" {
			topic = "mandipredict.predictions"
		}
		return internalrepo.NewKafkaHistory(producer, topic), nil

	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.History.ClickHouse.Host),
			pkgch.WithPort(cfg.History.ClickHouse.Port),
			pkgch.WithDatabase(cfg.History.ClickHouse.Database),
			pkgch.WithCredentials(cfg.History.ClickHouse.User, cfg.History.ClickHouse.Password),
			pkgch.WithTimeouts(cfg.History.ClickHouse.DialTimeout, cfg.History.ClickHouse.ReadTimeout, cfg.History.ClickHouse.WriteTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.InitSchema(ctx, internalrepo.HistorySchema); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		return internalrepo.NewClickHouseHistory(client), nil

	default:
		return usecase.NewNoopSink(), nil
	}
}

// ProvidePredictionService creates the prediction use case.
func ProvidePredictionService(
	cfg *config.Config,
	reg *registry.Registry,
	modelCache *inference.Cache,
	builder *features.Builder,
	log *logger.Logger,
	m usecase.Metrics,
	respCache cache.Service,
	sink usecase.HistorySink,
) *usecase.PredictionService {
	opts := []usecase.Option{
		usecase.WithMetrics(m),
		usecase.WithHistorySink(sink),
		usecase.WithPredictTimeout(cfg.Models.PredictTimeout),
		usecase.WithServiceName(cfg.Service.Name),
	}
	if respCache != nil {
		opts = append(opts, usecase.WithResponseCache(respCache, cfg.Cache.TTL))
	}
	return usecase.NewPredictionService(reg, modelCache, builder, log, opts...)
}

// ProvideHandler creates the HTTP route handler.
func ProvideHandler(log *logger.Logger, svc *usecase.PredictionService) xhttp.Handler {
	return api.NewPredictHandler(log, svc)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	sink usecase.HistorySink,
	respCache cache.Service,
) *server.App {
	closers := []io.Closer{sink}
	if c, ok := respCache.(io.Closer); ok {
		closers = append(closers, c)
	}
	return server.New(cfg, log, handler, closers...)
}
