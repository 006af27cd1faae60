package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeRadar/internal/domain/models"
)

func pick(sym string, price, score float64, verdict string, atr4h, rsi1h *float64) *models.EnrichedPick {
	p := &models.EnrichedPick{
		RankedCandidate: models.RankedCandidate{
			Symbol: sym,
			PairID: sym + "USDT",
			Price:  price,
			Score:  score,
		},
		Verdict:    verdict,
		Indicators: map[string]*models.IndicatorSet{},
	}
	p.Indicators["4h"] = &models.IndicatorSet{Interval: "4h", ATR14: atr4h}
	p.Indicators["1h"] = &models.IndicatorSet{Interval: "1h", RSI14: rsi1h}
	return p
}

func TestScalpPanicGateEmpty(t *testing.T) {
	f := NewScalpFilter(testConfig(t))
	out := f.Filter([]*models.EnrichedPick{
		pick("BTC", 100, 80, models.VerdictBuy, ptr(3), ptr(50)),
	}, models.RegimePanic)
	assert.Empty(t, out)
}

func TestScalpSkipsAvoidAndMissingATR(t *testing.T) {
	f := NewScalpFilter(testConfig(t))
	out := f.Filter([]*models.EnrichedPick{
		pick("AAA", 100, 80, models.VerdictAvoid, ptr(3), ptr(50)),
		pick("BBB", 100, 80, models.VerdictBuy, nil, ptr(50)),
		pick("CCC", 0, 80, models.VerdictBuy, ptr(3), ptr(50)),
		pick("DDD", 100, 80, models.VerdictBuy, ptr(3), ptr(50)),
	}, models.RegimeNeutral)
	require.Len(t, out, 1)
	assert.Equal(t, "DDD", out[0].Symbol)
}

func TestScalpSkipsOverboughtShortRSI(t *testing.T) {
	f := NewScalpFilter(testConfig(t))
	out := f.Filter([]*models.EnrichedPick{
		pick("HOT", 100, 80, models.VerdictBuy, ptr(3), ptr(80)),
		pick("OK", 100, 80, models.VerdictBuy, ptr(3), nil),
	}, models.RegimeNeutral)
	require.Len(t, out, 1)
	assert.Equal(t, "OK", out[0].Symbol)
}

func TestScalpFractionsClamped(t *testing.T) {
	f := NewScalpFilter(testConfig(t))
	// Huge ATR: take clamps to 3%, stop to 2%.
	out := f.Filter([]*models.EnrichedPick{
		pick("VOL", 100, 80, models.VerdictBuy, ptr(50), ptr(50)),
	}, models.RegimeNeutral)
	require.Len(t, out, 1)
	assert.Equal(t, 3.0, out[0].TakePct)
	assert.Equal(t, 2.0, out[0].StopPct)
	assert.Equal(t, 1.5, out[0].RewardRisk)
	assert.Equal(t, 103.0, out[0].Take)
	assert.Equal(t, 98.0, out[0].Stop)

	// Tiny ATR: take floors at 2%, stop at 0.8%.
	out = f.Filter([]*models.EnrichedPick{
		pick("CALM", 100, 80, models.VerdictBuy, ptr(0.01), ptr(50)),
	}, models.RegimeNeutral)
	require.Len(t, out, 1)
	assert.Equal(t, 2.0, out[0].TakePct)
	assert.Equal(t, 0.8, out[0].StopPct)
	assert.Equal(t, 2.5, out[0].RewardRisk)
}

func TestScalpSortsByRewardRiskThenScore(t *testing.T) {
	f := NewScalpFilter(testConfig(t))
	out := f.Filter([]*models.EnrichedPick{
		pick("LOW", 100, 90, models.VerdictBuy, ptr(50), ptr(50)),    // rr 1.5
		pick("HIGH", 100, 10, models.VerdictBuy, ptr(0.01), ptr(50)), // rr 2.5
		pick("MID", 100, 95, models.VerdictBuy, ptr(50), ptr(50)),    // rr 1.5, higher score
	}, models.RegimeNeutral)
	require.Len(t, out, 3)
	assert.Equal(t, "HIGH", out[0].Symbol)
	assert.Equal(t, "MID", out[1].Symbol)
	assert.Equal(t, "LOW", out[2].Symbol)
}

func TestScalpTruncatesToMax(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scalp.MaxOpportunities = 2
	f := NewScalpFilter(cfg)
	picks := make([]*models.EnrichedPick, 5)
	for i := range picks {
		picks[i] = pick(string(rune('A'+i)), 100, float64(i), models.VerdictBuy, ptr(3), ptr(50))
	}
	out := f.Filter(picks, models.RegimeNeutral)
	assert.Len(t, out, 2)
}
