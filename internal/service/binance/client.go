// Package binance implements the upstream market-data source against
// the Binance spot REST API, with an ordered endpoint fallback list.
package binance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"TradeRadar/internal/domain/models"
	"TradeRadar/internal/domain/repository"
	"TradeRadar/internal/service/ratelimit"
	"TradeRadar/pkg/config"
	httpclient "TradeRadar/pkg/http"
	"TradeRadar/pkg/logger"
	"TradeRadar/pkg/util"
)

const (
	pathTicker24h = "/api/v3/ticker/24hr"
	pathKlines    = "/api/v3/klines"
	pathAggTrades = "/api/v3/aggTrades"
)

// Client fetches market data over REST, rotating through fallback
// endpoints on failure. Requests pass a shared token-bucket limiter.
type Client struct {
	endpoints       []string
	snapshotTimeout time.Duration
	klinesTimeout   time.Duration
	tradesTimeout   time.Duration
	klineLimit      int
	userAgent       string
	rlCapacity      float64
	rlRefill        float64

	http    *httpclient.Client
	limiter *ratelimit.Limiter
	log     *logger.Logger
	metrics repository.Metrics
}

func New(cfg *config.Config, limiter *ratelimit.Limiter, metrics repository.Metrics, log *logger.Logger) repository.MarketSource {
	return &Client{
		endpoints:       cfg.Binance.Endpoints,
		snapshotTimeout: cfg.Binance.SnapshotTimeout,
		klinesTimeout:   cfg.Binance.KlinesTimeout,
		tradesTimeout:   cfg.Binance.TradesTimeout,
		klineLimit:      cfg.Binance.KlineLimit,
		userAgent:       cfg.Binance.UserAgent,
		rlCapacity:      cfg.Binance.RateLimit.Capacity,
		rlRefill:        cfg.Binance.RateLimit.RefillPerSec,
		http:            httpclient.NewClient(httpclient.WithTimeout(30 * time.Second)),
		limiter:         limiter,
		log:             log,
		metrics:         metrics,
	}
}

// FetchTicker24hAll fetches the full 24h ticker snapshot in one call.
func (c *Client) FetchTicker24hAll(ctx context.Context) ([]models.RawTicker, error) {
	var out []models.RawTicker
	err := c.getJSON(ctx, pathTicker24h, nil, c.snapshotTimeout, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchCandles fetches up to limit klines for a pair+interval, ordered
// oldest to newest. Binance returns klines as heterogeneous arrays.
func (c *Client) FetchCandles(ctx context.Context, pairID, interval string, limit int) ([]models.Candle, error) {
	if limit <= 0 {
		limit = c.klineLimit
	}
	params := map[string][]string{
		"symbol":   {pairID},
		"interval": {interval},
		"limit":    {strconv.Itoa(limit)},
	}

	var raw [][]any
	if err := c.getJSON(ctx, pathKlines, params, c.klinesTimeout, &raw); err != nil {
		return nil, err
	}

	candles := make([]models.Candle, 0, len(raw))
	for _, k := range raw {
		// kline: [openTime, open, high, low, close, volume, closeTime, ...]
		if len(k) < 6 {
			continue
		}
		candles = append(candles, models.Candle{
			OpenTime: time.UnixMilli(asInt64(k[0])).UTC(),
			Open:     asFloat(k[1]),
			High:     asFloat(k[2]),
			Low:      asFloat(k[3]),
			Close:    asFloat(k[4]),
			Volume:   asFloat(k[5]),
		})
	}
	return candles, nil
}

// FetchRecentTrades fetches the most recent aggregated trades for a pair.
func (c *Client) FetchRecentTrades(ctx context.Context, pairID string, limit int) ([]models.RawTrade, error) {
	params := map[string][]string{
		"symbol": {pairID},
		"limit":  {strconv.Itoa(limit)},
	}

	var raw []aggTrade
	if err := c.getJSON(ctx, pathAggTrades, params, c.tradesTimeout, &raw); err != nil {
		return nil, err
	}

	trades := make([]models.RawTrade, 0, len(raw))
	for _, t := range raw {
		trades = append(trades, models.RawTrade{
			ID:           t.ID,
			Price:        t.Price,
			Qty:          t.Qty,
			Time:         t.Time,
			IsBuyerMaker: t.IsBuyerMaker,
		})
	}
	return trades, nil
}

// aggTrade mirrors the compact field names of /api/v3/aggTrades.
type aggTrade struct {
	ID           int64  `json:"a"`
	Price        string `json:"p"`
	Qty          string `json:"q"`
	Time         int64  `json:"T"`
	IsBuyerMaker bool   `json:"m"`
}

// getJSON tries each endpoint in order until one succeeds.
func (c *Client) getJSON(ctx context.Context, path string, params map[string][]string, timeout time.Duration, dest interface{}) error {
	if !c.limiter.Wait("binance", c.rlCapacity, c.rlRefill, time.Now().Add(timeout)) {
		c.metrics.RecordFetch(path, "rate_limited")
		return fmt.Errorf("rate limit wait expired for %s", path)
	}

	var lastErr error
	for _, base := range c.endpoints {
		err := c.http.SendAndParse(ctx, &httpclient.RequestOptions{
			Method:      httpclient.MethodGet,
			URL:         base + path,
			QueryParams: params,
			Headers:     map[string]string{"User-Agent": c.userAgent},
			Timeout:     timeout,
		}, dest)
		if err == nil {
			c.metrics.RecordFetch(path, "ok")
			return nil
		}
		lastErr = err
		c.log.Warn("binance endpoint failed, trying next",
			logger.String("endpoint", base),
			logger.String("path", path),
			logger.Error(err))

		if ctx.Err() != nil {
			break
		}
	}

	c.metrics.RecordFetch(path, "error")
	return fmt.Errorf("all endpoints failed for %s: %w", path, lastErr)
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case string:
		return util.ParseFloatDefault(x, 0)
	case float64:
		return x
	}
	return 0
}

func asInt64(v any) int64 {
	switch x := v.(type) {
	case float64:
		return int64(x)
	case string:
		return int64(util.ParseFloatDefault(x, 0))
	}
	return 0
}
