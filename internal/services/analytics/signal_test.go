package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeRadar/internal/domain/models"
)

func ptr(v float64) *float64 { return &v }

func indSet(interval string, ema20, ema50, rsi, atrPct *float64) *models.IndicatorSet {
	return &models.IndicatorSet{
		Interval: interval,
		EMA20:    ema20,
		EMA50:    ema50,
		RSI14:    rsi,
		ATRPct:   atrPct,
	}
}

func upSet(interval string) *models.IndicatorSet {
	return indSet(interval, ptr(110), ptr(100), ptr(55), ptr(3))
}

func downSet(interval string) *models.IndicatorSet {
	return indSet(interval, ptr(90), ptr(100), ptr(45), ptr(3))
}

func TestEvaluatePanicShortCircuits(t *testing.T) {
	e := NewEnricher(testConfig(t))
	verdict, reasons := e.Evaluate(upSet("1h"), upSet("4h"), upSet("1d"), models.RegimePanic)
	assert.Equal(t, models.VerdictAvoid, verdict)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "panic")
}

func TestEvaluateTwoDownVotesAvoid(t *testing.T) {
	e := NewEnricher(testConfig(t))
	verdict, _ := e.Evaluate(downSet("1h"), downSet("4h"), upSet("1d"), models.RegimeNeutral)
	assert.Equal(t, models.VerdictAvoid, verdict)
}

func TestEvaluateTwoUpVotesBuy(t *testing.T) {
	e := NewEnricher(testConfig(t))
	verdict, reasons := e.Evaluate(upSet("1h"), upSet("4h"), downSet("1d"), models.RegimeNeutral)
	assert.Equal(t, models.VerdictBuy, verdict)
	assert.NotEmpty(t, reasons)
}

func TestEvaluateOverheatedGuard(t *testing.T) {
	e := NewEnricher(testConfig(t))
	hot := indSet("4h", ptr(110), ptr(100), ptr(80), ptr(3))
	verdict, _ := e.Evaluate(upSet("1h"), hot, upSet("1d"), models.RegimeNeutral)
	assert.Equal(t, models.VerdictWait, verdict)
}

func TestEvaluateMissingRSINeverTriggersGuard(t *testing.T) {
	e := NewEnricher(testConfig(t))
	noRSI := indSet("4h", ptr(110), ptr(100), nil, ptr(3))
	verdict, _ := e.Evaluate(upSet("1h"), noRSI, upSet("1d"), models.RegimeNeutral)
	assert.Equal(t, models.VerdictBuy, verdict)
}

func TestEvaluateMixedVotesWait(t *testing.T) {
	e := NewEnricher(testConfig(t))
	flat := indSet("1d", nil, nil, nil, nil)
	verdict, _ := e.Evaluate(upSet("1h"), flat, downSet("1d"), models.RegimeNeutral)
	assert.Equal(t, models.VerdictWait, verdict)
}

func TestEvaluateBearishDowngradesBuy(t *testing.T) {
	e := NewEnricher(testConfig(t))
	verdict, reasons := e.Evaluate(upSet("1h"), upSet("4h"), upSet("1d"), models.RegimeBearish)
	assert.Equal(t, models.VerdictWait, verdict)
	assert.Contains(t, reasons[len(reasons)-1], "bearish")
}

func TestEvaluateNilMediumSet(t *testing.T) {
	e := NewEnricher(testConfig(t))
	verdict, _ := e.Evaluate(nil, nil, nil, models.RegimeNeutral)
	assert.Equal(t, models.VerdictWait, verdict)
}

func TestEvaluateReasonsCapped(t *testing.T) {
	cfg := testConfig(t)
	cfg.Signal.MaxReasons = 2
	e := NewEnricher(cfg)
	_, reasons := e.Evaluate(upSet("1h"), upSet("4h"), upSet("1d"), models.RegimeNeutral)
	assert.LessOrEqual(t, len(reasons), 2)
}

func TestPlanOrdering(t *testing.T) {
	e := NewEnricher(testConfig(t))
	plan := e.Plan(100)
	assert.Equal(t, 100.0, plan.Entry)
	assert.Equal(t, 97.0, plan.Stop)
	assert.Equal(t, 104.0, plan.Take1)
	assert.Equal(t, 107.0, plan.Take2)
	assert.True(t, plan.Stop < plan.Entry && plan.Entry < plan.Take1 && plan.Take1 < plan.Take2)
}
