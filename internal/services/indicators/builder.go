package indicators

import (
	"TradeRadar/internal/domain/models"
	"TradeRadar/pkg/util"
)

const (
	emaShortPeriod = 20
	emaLongPeriod  = 50
	rsiPeriod      = 14
	atrPeriod      = 14

	// Trailing windows passed to EMA to reduce first-element seed bias.
	emaShortWindow = 120
	emaLongWindow  = 160

	emaShortMin = 30
	emaLongMin  = 60
	oscMin      = 20
)

// Build derives an IndicatorSet from a candle series ordered oldest to
// newest. Fields stay nil below their minimum history.
func Build(symbol, interval string, candles []models.Candle) *models.IndicatorSet {
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	closes := make([]float64, len(candles))
	for i, c := range candles {
		highs[i] = c.High
		lows[i] = c.Low
		closes[i] = c.Close
	}

	set := &models.IndicatorSet{Symbol: symbol, Interval: interval}
	if len(closes) == 0 {
		return set
	}
	set.LastClose = util.RoundN(closes[len(closes)-1], 8)

	if len(closes) >= emaShortMin {
		set.EMA20 = roundPtr(EMA(tail(closes, emaShortWindow), emaShortPeriod), 8)
	}
	if len(closes) >= emaLongMin {
		set.EMA50 = roundPtr(EMA(tail(closes, emaLongWindow), emaLongPeriod), 8)
	}
	if len(closes) >= oscMin {
		set.RSI14 = roundPtr(RSI(closes, rsiPeriod), 2)
		set.ATR14 = roundPtr(ATR(highs, lows, closes, atrPeriod), 8)
	}

	if set.ATR14 != nil && set.LastClose > 0 {
		pct := util.Round2(*set.ATR14 / set.LastClose * 100.0)
		set.ATRPct = &pct
	}
	return set
}

func tail(s []float64, n int) []float64 {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func roundPtr(v *float64, places int) *float64 {
	if v == nil {
		return nil
	}
	r := util.RoundN(*v, places)
	return &r
}
