package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeRadar/internal/domain/models"
	"TradeRadar/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}

func TestNormalizeKeepsQuoteAssetOnly(t *testing.T) {
	n := NewNormalizer(testConfig(t))
	out := n.Normalize([]models.RawTicker{
		{Symbol: "BTCUSDT", LastPrice: "50000", PriceChangePercent: "2.5", QuoteVolume: "1000000"},
		{Symbol: "BTCEUR", LastPrice: "45000", PriceChangePercent: "2.5", QuoteVolume: "1000000"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "BTC", out[0].Symbol)
	assert.Equal(t, "BTCUSDT", out[0].PairID)
}

func TestNormalizeDropsStablesAndLeveraged(t *testing.T) {
	n := NewNormalizer(testConfig(t))
	out := n.Normalize([]models.RawTicker{
		{Symbol: "USDCUSDT", LastPrice: "1", PriceChangePercent: "0", QuoteVolume: "9000000"},
		{Symbol: "BTCUPUSDT", LastPrice: "12", PriceChangePercent: "8", QuoteVolume: "9000000"},
		{Symbol: "ETHDOWNUSDT", LastPrice: "3", PriceChangePercent: "-8", QuoteVolume: "9000000"},
		{Symbol: "SOLUSDT", LastPrice: "150", PriceChangePercent: "4", QuoteVolume: "9000000"},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "SOL", out[0].Symbol)
}

func TestNormalizeDropsNonPositiveRecords(t *testing.T) {
	n := NewNormalizer(testConfig(t))
	out := n.Normalize([]models.RawTicker{
		{Symbol: "AUSDT", LastPrice: "0", PriceChangePercent: "5", QuoteVolume: "9000000"},
		{Symbol: "BUSDT", LastPrice: "10", PriceChangePercent: "5", QuoteVolume: "0"},
		{Symbol: "CUSDT", LastPrice: "not-a-number", PriceChangePercent: "5", QuoteVolume: "9000000"},
		{Symbol: "DUSDT", LastPrice: "10", PriceChangePercent: "garbage", QuoteVolume: "9000000"},
	})
	// D survives: unparsable change coerces to 0, price and volume are valid.
	require.Len(t, out, 1)
	assert.Equal(t, "D", out[0].Symbol)
	assert.Equal(t, 0.0, out[0].ChangePct24h)
}

func TestNormalizeOrderStable(t *testing.T) {
	n := NewNormalizer(testConfig(t))
	out := n.Normalize([]models.RawTicker{
		{Symbol: "ZENUSDT", LastPrice: "10", PriceChangePercent: "1", QuoteVolume: "100"},
		{Symbol: "AAVEUSDT", LastPrice: "90", PriceChangePercent: "2", QuoteVolume: "200"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "ZEN", out[0].Symbol)
	assert.Equal(t, "AAVE", out[1].Symbol)
}
