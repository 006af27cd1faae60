package analytics

import (
	"sort"

	"TradeRadar/internal/domain/models"
	"TradeRadar/pkg/config"
	"TradeRadar/pkg/util"
)

const rrEpsilon = 1e-6

// ScalpFilter re-derives ATR-sized entry/stop/take levels for enriched
// picks, bounded to the configured percentage bands, and ranks by
// reward:risk.
type ScalpFilter struct {
	targetMin      float64
	targetMax      float64
	stopMin        float64
	stopMax        float64
	stopATRMult    float64
	takeATRMult    float64
	overheatedRSI  float64
	maxOpps        int
	shortInterval  string
	mediumInterval string
}

func NewScalpFilter(cfg *config.Config) *ScalpFilter {
	return &ScalpFilter{
		targetMin:      cfg.Scalp.TargetMin,
		targetMax:      cfg.Scalp.TargetMax,
		stopMin:        cfg.Scalp.StopMin,
		stopMax:        cfg.Scalp.StopMax,
		stopATRMult:    cfg.Scalp.StopATRMult,
		takeATRMult:    cfg.Scalp.TakeATRMult,
		overheatedRSI:  cfg.Scalp.OverheatedRSI,
		maxOpps:        cfg.Scalp.MaxOpportunities,
		shortInterval:  cfg.Radar.Intervals.Short,
		mediumInterval: cfg.Radar.Intervals.Medium,
	}
}

// Filter scans the enriched picks and returns ranked scalp setups.
// Take and stop fractions are ATR-relative but hard-bounded, so the
// reward on any emitted setup stays inside the configured band
// regardless of how volatile the symbol is.
func (f *ScalpFilter) Filter(picks []*models.EnrichedPick, gate string) []*models.ScalpOpportunity {
	out := make([]*models.ScalpOpportunity, 0, len(picks))
	if gate == models.RegimePanic {
		return out
	}

	for _, p := range picks {
		if p.Verdict == models.VerdictAvoid {
			continue
		}
		medium := p.Indicators[f.mediumInterval]
		if medium == nil || medium.ATR14 == nil || *medium.ATR14 <= 0 || p.Price <= 0 {
			continue
		}
		atr := *medium.ATR14

		takeFrac := util.Clamp(f.takeATRMult*atr/p.Price, f.targetMin, f.targetMax)
		stopFrac := util.Clamp(f.stopATRMult*atr/p.Price, f.stopMin, f.stopMax)

		if short := p.Indicators[f.shortInterval]; short != nil &&
			short.RSI14 != nil && *short.RSI14 > f.overheatedRSI {
			continue
		}

		entry := p.Price
		rr := takeFrac / max(stopFrac, rrEpsilon)

		out = append(out, &models.ScalpOpportunity{
			Symbol:       p.Symbol,
			PairID:       p.PairID,
			Entry:        util.RoundN(entry, 8),
			Stop:         util.RoundN(entry*(1-stopFrac), 8),
			Take:         util.RoundN(entry*(1+takeFrac), 8),
			StopPct:      util.Round2(stopFrac * 100),
			TakePct:      util.Round2(takeFrac * 100),
			RewardRisk:   util.Round2(rr),
			Score:        p.Score,
			Verdict:      p.Verdict,
			ChangePct24h: p.ChangePct24h,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RewardRisk != out[j].RewardRisk {
			return out[i].RewardRisk > out[j].RewardRisk
		}
		return out[i].Score > out[j].Score
	})
	if len(out) > f.maxOpps {
		out = out[:f.maxOpps]
	}
	return out
}
