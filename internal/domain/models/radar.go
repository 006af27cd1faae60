package models

import "time"

// Regime labels, ordered from best to worst market conditions.
const (
	RegimeStrongBullish = "STRONG_BULLISH"
	RegimeBullish       = "BULLISH"
	RegimeNeutral       = "NEUTRAL"
	RegimeBearish       = "BEARISH"
	RegimePanic         = "PANIC"
)

// Verdict values produced by the signal enricher.
const (
	VerdictBuy   = "BUY"
	VerdictWait  = "WAIT"
	VerdictAvoid = "AVOID"
)

// Trade aggressor sides.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Trend labels per interval.
const (
	TrendUp   = "UP"
	TrendDown = "DOWN"
)

// IndicatorSet holds technical indicators for one (symbol, interval).
// Optional fields stay nil until enough candle history exists.
type IndicatorSet struct {
	Symbol    string   `json:"symbol"`
	Interval  string   `json:"interval"`
	LastClose float64  `json:"last_close"`
	EMA20     *float64 `json:"ema20,omitempty"`
	EMA50     *float64 `json:"ema50,omitempty"`
	RSI14     *float64 `json:"rsi14,omitempty"`
	ATR14     *float64 `json:"atr14,omitempty"`
	ATRPct    *float64 `json:"atr_pct,omitempty"`
}

// Trend returns "UP" if ema20>ema50, "DOWN" if ema20<ema50, "" if either
// is missing or they are equal.
func (s *IndicatorSet) Trend() string {
	if s == nil || s.EMA20 == nil || s.EMA50 == nil {
		return ""
	}
	switch {
	case *s.EMA20 > *s.EMA50:
		return TrendUp
	case *s.EMA20 < *s.EMA50:
		return TrendDown
	}
	return ""
}

// RegimeState is the market-wide condition computed once per top-picks
// cycle. Never mutated after creation.
type RegimeState struct {
	IndexValue    float64            `json:"index_value"`
	Label         string             `json:"label"`
	Gate          string             `json:"gate"`
	AnchorChanges map[string]float64 `json:"anchor_changes"`
	BreadthMedian float64            `json:"breadth_median"`
}

// RankedCandidate is a snapshot record with its composite score attached.
type RankedCandidate struct {
	Symbol         string  `json:"symbol"`
	PairID         string  `json:"pair_id"`
	Price          float64 `json:"price"`
	ChangePct24h   float64 `json:"change_pct_24h"`
	QuoteVolumeUSD float64 `json:"quote_volume_usd"`
	Score          float64 `json:"score"`
}

// TradePlan holds entry/exit levels, always stop < entry < take1 < take2.
type TradePlan struct {
	Entry float64 `json:"entry"`
	Stop  float64 `json:"stop"`
	Take1 float64 `json:"take1"`
	Take2 float64 `json:"take2"`
}

// EnrichedPick is a ranked candidate with multi-timeframe indicators,
// a verdict and a trade plan attached.
type EnrichedPick struct {
	RankedCandidate
	RegimeGate string                   `json:"regime_gate"`
	Indicators map[string]*IndicatorSet `json:"indicators"`
	Verdict    string                   `json:"verdict"`
	Reasons    []string                 `json:"reasons"`
	Plan       TradePlan                `json:"plan"`
	Error      string                   `json:"error,omitempty"`
}

// ScalpOpportunity is an ATR-sized fast-trade setup derived from a pick.
type ScalpOpportunity struct {
	Symbol       string  `json:"symbol"`
	PairID       string  `json:"pair_id"`
	Entry        float64 `json:"entry"`
	Stop         float64 `json:"stop"`
	Take         float64 `json:"take"`
	StopPct      float64 `json:"stop_pct"`
	TakePct      float64 `json:"take_pct"`
	RewardRisk   float64 `json:"reward_risk"`
	Score        float64 `json:"score"`
	Verdict      string  `json:"verdict"`
	ChangePct24h float64 `json:"change_pct_24h"`
}

// WhaleEvent is a single trade above the configured notional threshold.
type WhaleEvent struct {
	Symbol      string    `json:"symbol"`
	PairID      string    `json:"pair_id"`
	Side        string    `json:"side"`
	NotionalUSD float64   `json:"notional_usd"`
	Price       float64   `json:"price"`
	Qty         float64   `json:"qty"`
	Timestamp   time.Time `json:"timestamp"`
}

// PressureRecord is the buy/sell notional balance for one symbol's tape.
type PressureRecord struct {
	Symbol        string  `json:"symbol"`
	PairID        string  `json:"pair_id"`
	BuyNotional   float64 `json:"buy_notional"`
	SellNotional  float64 `json:"sell_notional"`
	PressureIndex float64 `json:"pressure_index"`
	WhaleHits     int     `json:"whale_hits"`
	Error         string  `json:"error,omitempty"`
}

// FilterSettings echoes the screening bounds that produced a result set.
type FilterSettings struct {
	QuoteAsset   string  `json:"quote_asset"`
	VolumeMinUSD float64 `json:"volume_min_usd"`
	ChangePctMin float64 `json:"change_pct_min"`
	ChangePctMax float64 `json:"change_pct_max"`
	PriceMin     float64 `json:"price_min"`
	TopN         int     `json:"top_n"`
}

// TopPicksResult is the full output of the top-picks pipeline stage.
type TopPicksResult struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Regime      *RegimeState    `json:"regime,omitempty"`
	Picks       []*EnrichedPick `json:"picks"`
	Universe    int             `json:"universe"`
	Filters     FilterSettings  `json:"filters"`
	Warnings    []string        `json:"warnings,omitempty"`
}

// ScalpResult is the output of the scalp-opportunity stage.
type ScalpResult struct {
	GeneratedAt   time.Time           `json:"generated_at"`
	RegimeGate    string              `json:"regime_gate"`
	Opportunities []*ScalpOpportunity `json:"opportunities"`
	Warnings      []string            `json:"warnings,omitempty"`
}

// WhaleResult is the output of the whale/pressure stage.
type WhaleResult struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Events      []*WhaleEvent     `json:"events"`
	Pressure    []*PressureRecord `json:"pressure"`
	Warnings    []string          `json:"warnings,omitempty"`
}
