// Package usecase wires the pipeline stages behind TTL-cached,
// single-flight accessors. These are the four entry points the query
// surface calls; none of them ever surfaces an upstream error to the
// caller. Failures degrade to well-formed results with warnings.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"TradeRadar/internal/domain/models"
	"TradeRadar/internal/domain/repository"
	"TradeRadar/internal/services/analytics"
	"TradeRadar/internal/services/indicators"
	"TradeRadar/pkg/cache"
	"TradeRadar/pkg/config"
	"TradeRadar/pkg/logger"
	"TradeRadar/pkg/util"
)

const (
	keyTopPicks = "radar:top"
	keyScalp    = "radar:scalp"
	keyWhale    = "radar:whale"

	stageTop        = "top_picks"
	stageIndicators = "indicators"
	stageScalp      = "scalp"
	stageWhale      = "whale"
)

// TapeReader optionally serves recent trades from a live stream tape.
type TapeReader interface {
	Tape(pairID string, limit int) []models.RawTrade
}

// Radar is the signal derivation pipeline. Concurrent callers hitting
// the same expired key block on one shared recomputation and all
// receive its result.
type Radar struct {
	cfg       *config.Config
	source    repository.MarketSource
	cache     cache.Service
	notifier  repository.Notifier
	publisher repository.EventPublisher
	metrics   repository.Metrics
	log       *logger.Logger
	tape      TapeReader // nil unless the live stream is enabled

	normalizer *analytics.Normalizer
	regime     *analytics.RegimeClassifier
	scorer     *analytics.Scorer
	enricher   *analytics.Enricher
	scalp      *analytics.ScalpFilter
	whale      *analytics.WhaleDetector

	group singleflight.Group
	now   func() time.Time
}

func NewRadar(
	cfg *config.Config,
	source repository.MarketSource,
	cacheSvc cache.Service,
	notifier repository.Notifier,
	publisher repository.EventPublisher,
	metrics repository.Metrics,
	log *logger.Logger,
) *Radar {
	return &Radar{
		cfg:        cfg,
		source:     source,
		cache:      cacheSvc,
		notifier:   notifier,
		publisher:  publisher,
		metrics:    metrics,
		log:        log,
		normalizer: analytics.NewNormalizer(cfg),
		regime:     analytics.NewRegimeClassifier(cfg),
		scorer:     analytics.NewScorer(cfg),
		enricher:   analytics.NewEnricher(cfg),
		scalp:      analytics.NewScalpFilter(cfg),
		whale:      analytics.NewWhaleDetector(cfg),
		now:        time.Now,
	}
}

// SetTapeReader attaches a live trade tape used in place of REST trade
// fetches when it has data for a pair.
func (r *Radar) SetTapeReader(tape TapeReader) { r.tape = tape }

// TopPicks returns the ranked, enriched candidate list, rebuilding it
// when the cached copy has expired or force is set.
func (r *Radar) TopPicks(ctx context.Context, force bool) *models.TopPicksResult {
	if !force {
		var cached models.TopPicksResult
		if err := r.cache.Get(ctx, keyTopPicks, &cached); err == nil {
			r.metrics.RecordCacheLookup(stageTop, "hit")
			return &cached
		}
		r.metrics.RecordCacheLookup(stageTop, "miss")
	}

	v, _, _ := r.group.Do(keyTopPicks, func() (interface{}, error) {
		res := r.buildTopPicks(ctx)
		if err := r.cache.Set(ctx, keyTopPicks, res, r.cfg.CacheTTL.TopPicks); err != nil {
			r.log.Warn("top picks cache store failed", logger.Error(err))
		}
		return res, nil
	})
	return v.(*models.TopPicksResult)
}

func (r *Radar) buildTopPicks(ctx context.Context) *models.TopPicksResult {
	start := r.now()
	defer func() {
		r.metrics.RecordStageBuild(stageTop, time.Since(start).Seconds())
	}()

	res := &models.TopPicksResult{
		GeneratedAt: start.UTC(),
		Picks:       []*models.EnrichedPick{},
		Filters: models.FilterSettings{
			QuoteAsset:   r.cfg.Radar.QuoteAsset,
			VolumeMinUSD: r.cfg.Radar.VolumeMinUSD,
			ChangePctMin: r.cfg.Radar.ChangePctMin,
			ChangePctMax: r.cfg.Radar.ChangePctMax,
			PriceMin:     r.cfg.Radar.PriceMin,
			TopN:         r.cfg.Radar.TopN,
		},
	}

	tickers, err := r.source.FetchTicker24hAll(ctx)
	if err != nil {
		r.log.Error("snapshot fetch failed", logger.Error(err))
		res.Warnings = append(res.Warnings, fmt.Sprintf("top build failed: %v", err))
		return res
	}

	snapshots := r.normalizer.Normalize(tickers)
	res.Universe = len(snapshots)

	regime := r.regime.Classify(snapshots)
	res.Regime = regime
	r.metrics.RecordRegimeIndex(regime.IndexValue)

	candidates := make([]models.RankedCandidate, 0, len(snapshots))
	for _, s := range snapshots {
		if s.QuoteVolumeUSD < r.cfg.Radar.VolumeMinUSD {
			continue
		}
		abs := s.ChangePct24h
		if abs < 0 {
			abs = -abs
		}
		if abs < r.cfg.Radar.ChangePctMin || abs > r.cfg.Radar.ChangePctMax {
			continue
		}
		if s.LastPrice < r.cfg.Radar.PriceMin {
			continue
		}

		candidates = append(candidates, models.RankedCandidate{
			Symbol:         s.Symbol,
			PairID:         s.PairID,
			Price:          util.RoundN(s.LastPrice, 8),
			ChangePct24h:   util.Round2(s.ChangePct24h),
			QuoteVolumeUSD: s.QuoteVolumeUSD,
			Score:          r.scorer.Score(s, regime.Gate),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > r.cfg.Radar.TopN {
		candidates = candidates[:r.cfg.Radar.TopN]
	}

	intervals := []string{
		r.cfg.Radar.Intervals.Short,
		r.cfg.Radar.Intervals.Medium,
		r.cfg.Radar.Intervals.Long,
	}
	for _, c := range candidates {
		pick := &models.EnrichedPick{
			RankedCandidate: c,
			RegimeGate:      regime.Gate,
			Indicators:      make(map[string]*models.IndicatorSet, len(intervals)),
		}
		r.metrics.RecordTopScore(c.Symbol, c.Score)

		for _, iv := range intervals {
			set, err := r.Indicators(ctx, c.Symbol, iv, false)
			if err != nil {
				pick.Error = fmt.Sprintf("indicators %s: %v", iv, err)
				r.log.Warn("indicator fetch failed",
					logger.String("symbol", c.Symbol),
					logger.String("interval", iv),
					logger.Error(err))
				continue
			}
			pick.Indicators[iv] = set
		}

		verdict, reasons := r.enricher.Evaluate(
			pick.Indicators[r.cfg.Radar.Intervals.Short],
			pick.Indicators[r.cfg.Radar.Intervals.Medium],
			pick.Indicators[r.cfg.Radar.Intervals.Long],
			regime.Gate,
		)
		pick.Verdict = verdict
		pick.Reasons = reasons
		pick.Plan = r.enricher.Plan(c.Price)
		res.Picks = append(res.Picks, pick)
	}

	return res
}

// Indicators returns the indicator set for one (symbol, interval),
// recomputing on cache miss. This is also exposed directly as the raw
// indicator lookup endpoint.
func (r *Radar) Indicators(ctx context.Context, symbol, interval string, force bool) (*models.IndicatorSet, error) {
	key := fmt.Sprintf("radar:indicators:%s:%s", symbol, interval)

	if !force {
		var cached models.IndicatorSet
		if err := r.cache.Get(ctx, key, &cached); err == nil {
			r.metrics.RecordCacheLookup(stageIndicators, "hit")
			return &cached, nil
		}
		r.metrics.RecordCacheLookup(stageIndicators, "miss")
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		start := r.now()
		pair := symbol + r.cfg.Radar.QuoteAsset
		candles, err := r.source.FetchCandles(ctx, pair, interval, r.cfg.Binance.KlineLimit)
		if err != nil {
			return nil, err
		}

		set := indicators.Build(symbol, interval, candles)
		r.metrics.RecordStageBuild(stageIndicators, time.Since(start).Seconds())
		if err := r.cache.Set(ctx, key, set, r.cfg.CacheTTL.Indicators); err != nil {
			r.log.Warn("indicator cache store failed", logger.Error(err))
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.IndicatorSet), nil
}

// ScalpOpportunities returns ranked scalp setups derived from the
// current top picks.
func (r *Radar) ScalpOpportunities(ctx context.Context, force bool) *models.ScalpResult {
	if !force {
		var cached models.ScalpResult
		if err := r.cache.Get(ctx, keyScalp, &cached); err == nil {
			r.metrics.RecordCacheLookup(stageScalp, "hit")
			return &cached
		}
		r.metrics.RecordCacheLookup(stageScalp, "miss")
	}

	v, _, _ := r.group.Do(keyScalp, func() (interface{}, error) {
		res := r.buildScalp(ctx, force)
		if err := r.cache.Set(ctx, keyScalp, res, r.cfg.CacheTTL.Scalp); err != nil {
			r.log.Warn("scalp cache store failed", logger.Error(err))
		}
		return res, nil
	})
	return v.(*models.ScalpResult)
}

func (r *Radar) buildScalp(ctx context.Context, force bool) *models.ScalpResult {
	start := r.now()
	defer func() {
		r.metrics.RecordStageBuild(stageScalp, time.Since(start).Seconds())
	}()

	top := r.TopPicks(ctx, force)
	gate := models.RegimeNeutral
	if top.Regime != nil {
		gate = top.Regime.Gate
	}

	res := &models.ScalpResult{
		GeneratedAt:   start.UTC(),
		RegimeGate:    gate,
		Opportunities: r.scalp.Filter(top.Picks, gate),
		Warnings:      top.Warnings,
	}

	if len(res.Opportunities) > 0 {
		best := res.Opportunities[0]
		if best.RewardRisk >= r.cfg.Scalp.NotifyMinRR {
			msg := fmt.Sprintf("Scalp: %s entry %v SL %v TP %v (RR %.2f)",
				best.PairID, best.Entry, best.Stop, best.Take, best.RewardRisk)
			r.notify(ctx, "scalp", msg)
		}
	}
	return res
}

// WhalePressure returns large-trade events and buy/sell pressure for
// the current top picks.
func (r *Radar) WhalePressure(ctx context.Context, force bool) *models.WhaleResult {
	if !force {
		var cached models.WhaleResult
		if err := r.cache.Get(ctx, keyWhale, &cached); err == nil {
			r.metrics.RecordCacheLookup(stageWhale, "hit")
			return &cached
		}
		r.metrics.RecordCacheLookup(stageWhale, "miss")
	}

	v, _, _ := r.group.Do(keyWhale, func() (interface{}, error) {
		res := r.buildWhale(ctx, force)
		if err := r.cache.Set(ctx, keyWhale, res, r.cfg.CacheTTL.Whale); err != nil {
			r.log.Warn("whale cache store failed", logger.Error(err))
		}
		return res, nil
	})
	return v.(*models.WhaleResult)
}

func (r *Radar) buildWhale(ctx context.Context, force bool) *models.WhaleResult {
	start := r.now()
	defer func() {
		r.metrics.RecordStageBuild(stageWhale, time.Since(start).Seconds())
	}()

	top := r.TopPicks(ctx, force)
	res := &models.WhaleResult{
		GeneratedAt: start.UTC(),
		Events:      []*models.WhaleEvent{},
		Pressure:    []*models.PressureRecord{},
		Warnings:    top.Warnings,
	}

	picks := top.Picks
	if len(picks) > r.cfg.Whale.MaxSymbols {
		picks = picks[:r.cfg.Whale.MaxSymbols]
	}

	for _, p := range picks {
		trades, err := r.fetchTape(ctx, p.PairID)
		if err != nil {
			res.Pressure = append(res.Pressure, &models.PressureRecord{
				Symbol: p.Symbol,
				PairID: p.PairID,
				Error:  truncate(err.Error(), 220),
			})
			continue
		}

		events, pressure := r.whale.ScanTape(p.Symbol, p.PairID, trades)
		for _, e := range events {
			r.metrics.RecordWhaleEvent(e.Side)
			if err := r.publisher.PublishWhaleEvent(ctx, e); err != nil {
				r.log.Warn("whale publish failed", logger.String("pair", e.PairID), logger.Error(err))
			}
		}
		res.Events = append(res.Events, events...)
		res.Pressure = append(res.Pressure, pressure)
	}

	sort.SliceStable(res.Events, func(i, j int) bool {
		return res.Events[i].NotionalUSD > res.Events[j].NotionalUSD
	})
	if len(res.Events) > r.cfg.Whale.MaxEvents {
		res.Events = res.Events[:r.cfg.Whale.MaxEvents]
	}
	sort.SliceStable(res.Pressure, func(i, j int) bool {
		return res.Pressure[i].PressureIndex > res.Pressure[j].PressureIndex
	})

	if len(res.Events) > 0 {
		big := res.Events[0]
		if r.now().Sub(big.Timestamp) <= r.cfg.Whale.FreshWindow {
			msg := fmt.Sprintf("Whale: %s %s ~$%s @ %v",
				big.PairID, big.Side, util.FormatUSD(big.NotionalUSD), big.Price)
			r.notify(ctx, "whale", msg)
		}
	}
	return res
}

// fetchTape prefers the live stream tape when it has enough data.
func (r *Radar) fetchTape(ctx context.Context, pairID string) ([]models.RawTrade, error) {
	limit := r.cfg.Whale.LookbackTrades
	if r.tape != nil {
		if tape := r.tape.Tape(pairID, limit); len(tape) >= limit {
			return tape, nil
		}
	}
	return r.source.FetchRecentTrades(ctx, pairID, limit)
}

func (r *Radar) notify(ctx context.Context, kind, text string) {
	r.metrics.RecordNotification(kind)
	if err := r.notifier.Notify(ctx, text); err != nil {
		r.log.Warn("notify failed", logger.String("kind", kind), logger.Error(err))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
