package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeRadar/internal/domain/models"
)

func TestScanTapeThresholdInclusive(t *testing.T) {
	w := NewWhaleDetector(testConfig(t))
	// notional exactly 750000 must be included
	events, _ := w.ScanTape("BTC", "BTCUSDT", []models.RawTrade{
		{Price: "75000", Qty: "10", IsBuyerMaker: false, Time: 1700000000000},
	})
	require.Len(t, events, 1)
	assert.Equal(t, 750000.0, events[0].NotionalUSD)
	assert.Equal(t, models.SideBuy, events[0].Side)
}

func TestScanTapeMakerFlagMeansSellAggressor(t *testing.T) {
	w := NewWhaleDetector(testConfig(t))
	events, rec := w.ScanTape("BTC", "BTCUSDT", []models.RawTrade{
		{Price: "100", Qty: "10000", IsBuyerMaker: true, Time: 1700000000000},
	})
	require.Len(t, events, 1)
	assert.Equal(t, models.SideSell, events[0].Side)
	assert.Equal(t, 1000000.0, events[0].NotionalUSD)
	assert.Equal(t, 1000000.0, rec.SellNotional)
	assert.Equal(t, 0.0, rec.BuyNotional)
	assert.Equal(t, -100.0, rec.PressureIndex)
	assert.Equal(t, 1, rec.WhaleHits)
}

func TestScanTapeBelowThresholdNoEvent(t *testing.T) {
	w := NewWhaleDetector(testConfig(t))
	events, rec := w.ScanTape("ETH", "ETHUSDT", []models.RawTrade{
		{Price: "100", Qty: "10", IsBuyerMaker: false, Time: 1700000000000},
	})
	assert.Empty(t, events)
	assert.Equal(t, 0, rec.WhaleHits)
	assert.Equal(t, 100.0, rec.PressureIndex)
}

func TestScanTapePressureBounds(t *testing.T) {
	w := NewWhaleDetector(testConfig(t))
	_, rec := w.ScanTape("SOL", "SOLUSDT", []models.RawTrade{
		{Price: "100", Qty: "5", IsBuyerMaker: false, Time: 1},
		{Price: "100", Qty: "5", IsBuyerMaker: true, Time: 2},
	})
	assert.Equal(t, 0.0, rec.PressureIndex)
	assert.GreaterOrEqual(t, rec.PressureIndex, -100.0)
	assert.LessOrEqual(t, rec.PressureIndex, 100.0)
}

func TestScanTapeEmptyTapeZeroPressure(t *testing.T) {
	w := NewWhaleDetector(testConfig(t))
	events, rec := w.ScanTape("SOL", "SOLUSDT", nil)
	assert.Empty(t, events)
	assert.Equal(t, 0.0, rec.PressureIndex)
}

func TestScanTapeTimestampFromEpochMillis(t *testing.T) {
	w := NewWhaleDetector(testConfig(t))
	events, _ := w.ScanTape("BTC", "BTCUSDT", []models.RawTrade{
		{Price: "100000", Qty: "10", IsBuyerMaker: false, Time: 1756700000000},
	})
	require.Len(t, events, 1)
	assert.Equal(t, int64(1756700000), events[0].Timestamp.Unix())
}
