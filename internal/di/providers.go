package di

import (
	"fmt"

	"TradeRadar/internal/domain/repository"
	"TradeRadar/internal/handler/api"
	internalrepo "TradeRadar/internal/repository"
	"TradeRadar/internal/service/binance"
	"TradeRadar/internal/service/ratelimit"
	"TradeRadar/internal/service/telegram"
	"TradeRadar/internal/usecase"
	"TradeRadar/pkg/cache"
	"TradeRadar/pkg/config"
	xhttp "TradeRadar/pkg/http"
	pkgkafka "TradeRadar/pkg/kafka"
	"TradeRadar/pkg/logger"
	"TradeRadar/pkg/metrics"
	"TradeRadar/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the cache backend selected in config.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		return newRedis(cfg)
	case "layered":
		redis, err := newRedis(cfg)
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredCache(redis), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}

func newRedis(cfg *config.Config) (*cache.RedisCache, error) {
	return cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
}

// ProvideRateLimiter creates the shared upstream token-bucket limiter.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideMarketSource creates the Binance REST source.
func ProvideMarketSource(
	cfg *config.Config,
	limiter *ratelimit.Limiter,
	m repository.Metrics,
	log *logger.Logger,
) repository.MarketSource {
	return binance.New(cfg, limiter, m, log)
}

// ProvideNotifier creates the Telegram notifier, or a console fallback
// when Telegram is not configured.
func ProvideNotifier(cfg *config.Config, log *logger.Logger) repository.Notifier {
	if cfg.Telegram.Enabled {
		return telegram.New(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
	}
	return telegram.NewConsole(log)
}

// ProvidePublisher creates the Kafka whale-event publisher, or a no-op
// when Kafka is disabled.
func ProvidePublisher(cfg *config.Config, log *logger.Logger) (repository.EventPublisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NopPublisher{}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaWhalePublisher(producer, cfg.Kafka.Topic, log), nil
}

// ProvideStream creates the live trade stream when enabled, else nil.
func ProvideStream(cfg *config.Config, log *logger.Logger) *binance.Stream {
	if !cfg.Stream.Enabled {
		return nil
	}
	return binance.NewStream(cfg, log)
}

// ProvideRadar creates the pipeline use case.
func ProvideRadar(
	cfg *config.Config,
	source repository.MarketSource,
	cacheSvc cache.Service,
	notifier repository.Notifier,
	publisher repository.EventPublisher,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.Radar {
	return usecase.NewRadar(cfg, source, cacheSvc, notifier, publisher, m, log)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(log *logger.Logger, radar *usecase.Radar) xhttp.Handler {
	return api.NewRadarEchoHandler(log, radar)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	radar *usecase.Radar,
	handler xhttp.Handler,
	stream *binance.Stream,
	publisher repository.EventPublisher,
) *server.App {
	return server.New(cfg, log, radar, handler, stream, publisher)
}
