package repository

import (
	"context"

	"TradeRadar/internal/domain/models"
)

// MarketSource is the upstream exchange data provider.
type MarketSource interface {
	FetchTicker24hAll(ctx context.Context) ([]models.RawTicker, error)
	FetchCandles(ctx context.Context, pairID, interval string, limit int) ([]models.Candle, error)
	FetchRecentTrades(ctx context.Context, pairID string, limit int) ([]models.RawTrade, error)
}

// Notifier delivers best-effort outbound alerts. Implementations own
// their dedup; callers never retry.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// EventPublisher pushes whale events to an external bus.
type EventPublisher interface {
	PublishWhaleEvent(ctx context.Context, e *models.WhaleEvent) error
	Close() error
}

// Metrics abstracts the pipeline's instrumentation points.
type Metrics interface {
	RecordFetch(endpoint, result string)
	RecordCacheLookup(stage, result string)
	RecordStageBuild(stage string, seconds float64)
	RecordWhaleEvent(side string)
	RecordNotification(kind string)
	RecordTopScore(symbol string, score float64)
	RecordRegimeIndex(value float64)
}
