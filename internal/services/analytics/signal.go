package analytics

import (
	"fmt"

	"TradeRadar/internal/domain/models"
	"TradeRadar/pkg/config"
	"TradeRadar/pkg/util"
)

// Enricher evaluates the rule-based verdict for a candidate from its
// multi-timeframe indicators and derives a fixed-ratio trade plan.
type Enricher struct {
	overheatedRSI float64
	oversoldRSI   float64
	highATRPct    float64
	moderateATR   float64
	maxReasons    int
	planStopPct   float64
	planTake1Pct  float64
	planTake2Pct  float64
}

func NewEnricher(cfg *config.Config) *Enricher {
	return &Enricher{
		overheatedRSI: cfg.Signal.OverheatedRSI,
		oversoldRSI:   cfg.Signal.OversoldRSI,
		highATRPct:    cfg.Signal.HighATRPct,
		moderateATR:   cfg.Signal.ModerateATR,
		maxReasons:    cfg.Signal.MaxReasons,
		planStopPct:   cfg.Signal.PlanStopPct,
		planTake1Pct:  cfg.Signal.PlanTake1Pct,
		planTake2Pct:  cfg.Signal.PlanTake2Pct,
	}
}

// Evaluate runs the verdict rules over the three timeframe indicator
// sets. Rule order matters: PANIC short-circuits everything, and the
// bearish post-check downgrades BUY after the main ladder. Missing
// indicators always fall toward the conservative branch.
func (e *Enricher) Evaluate(short, medium, long *models.IndicatorSet, gate string) (string, []string) {
	if medium == nil {
		medium = &models.IndicatorSet{}
	}
	reasons := make([]string, 0, e.maxReasons)

	if gate == models.RegimePanic {
		reasons = append(reasons, "market panic: risk elevated")
		return models.VerdictAvoid, e.cap(reasons)
	}

	upVotes, downVotes := 0, 0
	for _, set := range []*models.IndicatorSet{short, medium, long} {
		switch set.Trend() {
		case models.TrendUp:
			upVotes++
		case models.TrendDown:
			downVotes++
		}
	}

	if upVotes >= 2 {
		reasons = append(reasons, "trend: multi-timeframe UP")
	}
	if downVotes >= 2 {
		reasons = append(reasons, "trend: multi-timeframe DOWN")
	}

	rsiMedium := medium.RSI14
	if rsiMedium != nil {
		switch {
		case *rsiMedium > e.overheatedRSI:
			reasons = append(reasons, fmt.Sprintf("RSI(%s) overheated", medium.Interval))
		case *rsiMedium < e.oversoldRSI:
			reasons = append(reasons, fmt.Sprintf("RSI(%s) oversold, bounce candidate", medium.Interval))
		default:
			reasons = append(reasons, fmt.Sprintf("RSI(%s) balanced", medium.Interval))
		}
	}

	if atrPct := medium.ATRPct; atrPct != nil {
		switch {
		case *atrPct > e.highATRPct:
			reasons = append(reasons, "ATR% high, volatile")
		case *atrPct > e.moderateATR:
			reasons = append(reasons, "ATR% moderate, caution")
		default:
			reasons = append(reasons, "ATR% low to moderate")
		}
	}

	verdict := models.VerdictWait
	switch {
	case downVotes >= 2:
		verdict = models.VerdictAvoid
	case upVotes >= 2:
		if rsiMedium != nil && *rsiMedium > e.overheatedRSI {
			verdict = models.VerdictWait
		} else {
			verdict = models.VerdictBuy
		}
	}

	if gate == models.RegimeBearish && verdict == models.VerdictBuy {
		reasons = append(reasons, "market bearish: downgraded to WAIT")
		verdict = models.VerdictWait
	}

	return verdict, e.cap(reasons)
}

// Plan derives fixed percentage entry/exit levels from the current
// price. ATR-relative sizing belongs to the scalp filter, not here.
func (e *Enricher) Plan(price float64) models.TradePlan {
	return models.TradePlan{
		Entry: util.RoundN(price, 8),
		Stop:  util.RoundN(price*(1-e.planStopPct), 8),
		Take1: util.RoundN(price*(1+e.planTake1Pct), 8),
		Take2: util.RoundN(price*(1+e.planTake2Pct), 8),
	}
}

func (e *Enricher) cap(reasons []string) []string {
	if len(reasons) > e.maxReasons {
		return reasons[:e.maxReasons]
	}
	return reasons
}
