package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeRadar/internal/domain/models"
)

func snap(sym string, chg, vol float64) models.SymbolSnapshot {
	return models.SymbolSnapshot{
		Symbol:         sym,
		PairID:         sym + "USDT",
		LastPrice:      100,
		ChangePct24h:   chg,
		QuoteVolumeUSD: vol,
	}
}

func TestClassifyStrongBullish(t *testing.T) {
	r := NewRegimeClassifier(testConfig(t))
	// 0.5*3 + 0.3*2 + 0.2*median(3,2,1) = 1.5+0.6+0.4 = 2.5
	state := r.Classify([]models.SymbolSnapshot{
		snap("BTC", 3, 3e9),
		snap("ETH", 2, 2e9),
		snap("SOL", 1, 1e9),
	})
	assert.Equal(t, models.RegimeStrongBullish, state.Label)
	assert.Equal(t, models.RegimeBullish, state.Gate)
	assert.InDelta(t, 2.5, state.IndexValue, 0.01)
}

func TestClassifyPanic(t *testing.T) {
	r := NewRegimeClassifier(testConfig(t))
	state := r.Classify([]models.SymbolSnapshot{
		snap("BTC", -5, 3e9),
		snap("ETH", -4, 2e9),
	})
	assert.Equal(t, models.RegimePanic, state.Label)
	assert.Equal(t, models.RegimePanic, state.Gate)
}

func TestClassifyMissingAnchorsContributeZero(t *testing.T) {
	r := NewRegimeClassifier(testConfig(t))
	// No BTC/ETH: index = 0.2*median only.
	state := r.Classify([]models.SymbolSnapshot{
		snap("SOL", 10, 1e9),
	})
	assert.InDelta(t, 2.0, state.IndexValue, 0.01)
	assert.Equal(t, models.RegimeStrongBullish, state.Label)
	assert.Equal(t, 0.0, state.AnchorChanges["BTC"])
	assert.Equal(t, 0.0, state.AnchorChanges["ETH"])
}

func TestClassifyEmptyUniverseIsNeutral(t *testing.T) {
	r := NewRegimeClassifier(testConfig(t))
	state := r.Classify(nil)
	assert.Equal(t, models.RegimeNeutral, state.Label)
	assert.Equal(t, 0.0, state.IndexValue)
}

func TestClassifyBreadthUsesTopNByVolume(t *testing.T) {
	cfg := testConfig(t)
	cfg.Regime.BreadthTopN = 2
	r := NewRegimeClassifier(cfg)
	// Breadth must use the top-2 by volume {+1, +2}, not the tail -50.
	state := r.Classify([]models.SymbolSnapshot{
		snap("AAA", -50, 10),
		snap("BBB", 1, 5e9),
		snap("CCC", 2, 4e9),
	})
	assert.InDelta(t, 1.5, state.BreadthMedian, 0.01)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 5.0, median([]float64{5}))
	assert.Equal(t, 2.0, median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, median([]float64{1, 4, 2, 3}))
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	r := NewRegimeClassifier(testConfig(t))
	in := []models.SymbolSnapshot{
		snap("AAA", 1, 10),
		snap("BBB", 2, 5e9),
	}
	_ = r.Classify(in)
	require.Equal(t, "AAA", in[0].Symbol)
	require.Equal(t, "BBB", in[1].Symbol)
}
