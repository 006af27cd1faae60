package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeRadar/internal/domain/models"
)

func TestEMAEmptyAndBadPeriod(t *testing.T) {
	assert.Nil(t, EMA(nil, 20))
	assert.Nil(t, EMA([]float64{1, 2, 3}, 0))
	assert.Nil(t, EMA([]float64{1, 2, 3}, -5))
}

func TestEMASeedsFromFirstElement(t *testing.T) {
	v := EMA([]float64{42.0}, 20)
	require.NotNil(t, v)
	assert.Equal(t, 42.0, *v)
}

func TestEMADeterministic(t *testing.T) {
	series := []float64{10, 11, 12, 11, 13, 14, 13, 15}
	a := EMA(series, 3)
	b := EMA(series, 3)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, *a, *b)
}

func TestEMAIncreasingSeriesIncreases(t *testing.T) {
	// EMA over a strictly rising series rises from the third point on.
	series := make([]float64, 60)
	for i := range series {
		series[i] = 100 + float64(i)
	}
	prev := -1.0
	for end := 3; end <= len(series); end++ {
		v := EMA(series[:end], 20)
		require.NotNil(t, v)
		assert.Greater(t, *v, prev)
		prev = *v
	}
}

func TestRSIInsufficientHistory(t *testing.T) {
	series := make([]float64, 14)
	assert.Nil(t, RSI(series, 14))
}

func TestRSIAllRisingIsExactly100(t *testing.T) {
	series := make([]float64, 30)
	for i := range series {
		series[i] = 1 + float64(i)
	}
	v := RSI(series, 14)
	require.NotNil(t, v)
	assert.Equal(t, 100.0, *v)
}

func TestRSIBounds(t *testing.T) {
	series := []float64{44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10,
		45.42, 45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00,
		46.03, 46.41, 46.22, 45.64}
	v := RSI(series, 14)
	require.NotNil(t, v)
	assert.GreaterOrEqual(t, *v, 0.0)
	assert.LessOrEqual(t, *v, 100.0)
}

func TestRSIAllFallingIsZero(t *testing.T) {
	series := make([]float64, 30)
	for i := range series {
		series[i] = 100 - float64(i)
	}
	v := RSI(series, 14)
	require.NotNil(t, v)
	assert.Equal(t, 0.0, *v)
}

func TestATRInsufficientHistory(t *testing.T) {
	h := make([]float64, 14)
	assert.Nil(t, ATR(h, h, h, 14))
}

func TestATRMismatchedLengths(t *testing.T) {
	closes := make([]float64, 20)
	highs := make([]float64, 19)
	assert.Nil(t, ATR(highs, closes, closes, 14))
}

func TestATRConstantRange(t *testing.T) {
	// Flat candles with a constant 2-point range yield ATR == 2.
	n := 40
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i] = 101
		lows[i] = 99
		closes[i] = 100
	}
	v := ATR(highs, lows, closes, 14)
	require.NotNil(t, v)
	assert.InDelta(t, 2.0, *v, 1e-9)
}

func TestBuildWindowGates(t *testing.T) {
	mk := func(n int) []models.Candle {
		out := make([]models.Candle, n)
		for i := range out {
			p := 100 + float64(i)*0.5
			out[i] = models.Candle{Open: p, High: p + 1, Low: p - 1, Close: p}
		}
		return out
	}

	set := Build("BTC", "4h", mk(10))
	assert.Nil(t, set.EMA20)
	assert.Nil(t, set.EMA50)
	assert.Nil(t, set.RSI14)
	assert.Nil(t, set.ATR14)
	assert.Greater(t, set.LastClose, 0.0)

	set = Build("BTC", "4h", mk(30))
	assert.NotNil(t, set.EMA20)
	assert.Nil(t, set.EMA50)
	assert.NotNil(t, set.RSI14)
	assert.NotNil(t, set.ATR14)
	assert.NotNil(t, set.ATRPct)

	set = Build("BTC", "4h", mk(60))
	assert.NotNil(t, set.EMA50)
}

func TestBuildEmpty(t *testing.T) {
	set := Build("BTC", "1h", nil)
	assert.Equal(t, 0.0, set.LastClose)
	assert.Nil(t, set.EMA20)
	assert.Equal(t, "", set.Trend())
}

func TestTrendLabel(t *testing.T) {
	up, down := 10.0, 5.0
	s := &models.IndicatorSet{EMA20: &up, EMA50: &down}
	assert.Equal(t, models.TrendUp, s.Trend())
	s = &models.IndicatorSet{EMA20: &down, EMA50: &up}
	assert.Equal(t, models.TrendDown, s.Trend())
	s = &models.IndicatorSet{EMA20: &up}
	assert.Equal(t, "", s.Trend())
}
