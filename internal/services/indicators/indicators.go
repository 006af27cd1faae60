// Package indicators provides pure technical-indicator math over numeric
// series. No state, no I/O; callers pre-sanitize inputs.
package indicators

import "math"

// EMA computes an exponential moving average over series, seeding from
// the first element of the slice rather than an SMA of the first period.
// Callers pass an appropriately sized trailing window to reduce seed
// bias. Returns nil if the series is empty or period is non-positive.
func EMA(series []float64, period int) *float64 {
	if len(series) == 0 || period <= 0 {
		return nil
	}
	k := 2.0 / (float64(period) + 1.0)
	ema := series[0]
	for _, v := range series[1:] {
		ema = v*k + ema*(1.0-k)
	}
	return &ema
}

// RSI computes a Wilder-smoothed relative strength index. Requires at
// least period+1 values; returns nil otherwise. An all-gain series
// returns exactly 100.
func RSI(series []float64, period int) *float64 {
	if period <= 0 || len(series) < period+1 {
		return nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := series[i] - series[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss += -delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	n := float64(period)
	for i := period + 1; i < len(series); i++ {
		delta := series[i] - series[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*(n-1) + gain) / n
		avgLoss = (avgLoss*(n-1) + loss) / n
	}

	if avgLoss == 0 {
		out := 100.0
		return &out
	}
	rs := avgGain / avgLoss
	out := 100.0 - 100.0/(1.0+rs)
	return &out
}

// ATR computes a Wilder-smoothed average true range. The three slices
// must be equal-length, ordered oldest to newest; requires at least
// period+1 closes. Returns nil on insufficient history.
func ATR(highs, lows, closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period+1 ||
		len(highs) != len(closes) || len(lows) != len(closes) {
		return nil
	}

	trs := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prevClose := closes[i-1]
		tr := math.Max(highs[i]-lows[i],
			math.Max(math.Abs(highs[i]-prevClose), math.Abs(lows[i]-prevClose)))
		trs = append(trs, tr)
	}
	if len(trs) < period {
		return nil
	}

	var atr float64
	for _, tr := range trs[:period] {
		atr += tr
	}
	atr /= float64(period)

	n := float64(period)
	for _, tr := range trs[period:] {
		atr = (atr*(n-1) + tr) / n
	}
	return &atr
}
