package analytics

import (
	"math"

	"TradeRadar/internal/domain/models"
	"TradeRadar/pkg/config"
	"TradeRadar/pkg/util"
)

// Scorer maps (momentum, liquidity, spread proxy, regime gate) to a
// composite 0-100 score. Deterministic: identical inputs always
// produce identical scores.
type Scorer struct {
	momentumMin     float64
	momentumMax     float64
	liquidityLogMin float64
	liquidityLogMax float64
	spreadFloor     float64
	spreadCeil      float64
	wMomentum       float64
	wLiquidity      float64
	wSpread         float64
	regimePenalty   float64
	chasePenalty    float64
	chaseChangePct  float64
	spreadProxy     float64
}

func NewScorer(cfg *config.Config) *Scorer {
	return &Scorer{
		momentumMin:     cfg.Scoring.MomentumMin,
		momentumMax:     cfg.Scoring.MomentumMax,
		liquidityLogMin: cfg.Scoring.LiquidityLogMin,
		liquidityLogMax: cfg.Scoring.LiquidityLogMax,
		spreadFloor:     cfg.Scoring.SpreadFloor,
		spreadCeil:      cfg.Scoring.SpreadCeil,
		wMomentum:       cfg.Scoring.WeightMomentum,
		wLiquidity:      cfg.Scoring.WeightLiquidity,
		wSpread:         cfg.Scoring.WeightSpread,
		regimePenalty:   cfg.Scoring.RegimePenalty,
		chasePenalty:    cfg.Scoring.ChasePenalty,
		chaseChangePct:  cfg.Scoring.ChaseChangePct,
		spreadProxy:     cfg.Radar.SpreadProxy,
	}
}

// Score computes the composite score for one snapshot under a gate.
// Liquidity dominates the weighting: deep markets beat hot movers.
func (s *Scorer) Score(snap models.SymbolSnapshot, gate string) float64 {
	chg := util.Clamp(snap.ChangePct24h, s.momentumMin, s.momentumMax)
	span := s.momentumMax - s.momentumMin
	momentum := util.Clamp((chg-s.momentumMin)/span*100.0, 0, 100)

	logVol := math.Log10(math.Max(snap.QuoteVolumeUSD, 1.0))
	liquidity := util.Clamp(
		(logVol-s.liquidityLogMin)/(s.liquidityLogMax-s.liquidityLogMin)*100.0, 0, 100)

	spread := util.Clamp(
		(s.spreadCeil-s.spreadProxy)/(s.spreadCeil-s.spreadFloor)*100.0, 0, 100)

	base := s.wMomentum*momentum + s.wLiquidity*liquidity + s.wSpread*spread

	if gate == models.RegimeBearish || gate == models.RegimePanic {
		base -= s.regimePenalty
		if snap.ChangePct24h > s.chaseChangePct {
			base -= s.chasePenalty
		}
	}

	return util.Round1(util.Clamp(base, 0, 100))
}
