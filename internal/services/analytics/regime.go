package analytics

import (
	"sort"

	"TradeRadar/internal/domain/models"
	"TradeRadar/pkg/config"
	"TradeRadar/pkg/util"
)

// RegimeClassifier maps a snapshot universe to a market-wide regime.
type RegimeClassifier struct {
	anchorPrimary   string
	anchorSecondary string
	wPrimary        float64
	wSecondary      float64
	wBreadth        float64
	breadthTopN     int
	strongBullish   float64
	bullish         float64
	panic           float64
	bearish         float64
}

func NewRegimeClassifier(cfg *config.Config) *RegimeClassifier {
	return &RegimeClassifier{
		anchorPrimary:   cfg.Regime.AnchorPrimary,
		anchorSecondary: cfg.Regime.AnchorSecondary,
		wPrimary:        cfg.Regime.WeightPrimary,
		wSecondary:      cfg.Regime.WeightSecondary,
		wBreadth:        cfg.Regime.WeightBreadth,
		breadthTopN:     cfg.Regime.BreadthTopN,
		strongBullish:   cfg.Regime.StrongBullish,
		bullish:         cfg.Regime.Bullish,
		panic:           cfg.Regime.Panic,
		bearish:         cfg.Regime.Bearish,
	}
}

// Classify computes the weighted regime index from the two anchors and
// the breadth median of the top-N by volume. Missing anchors contribute
// zero. Thresholds apply in order, first match wins.
func (r *RegimeClassifier) Classify(snapshots []models.SymbolSnapshot) *models.RegimeState {
	byVol := make([]models.SymbolSnapshot, len(snapshots))
	copy(byVol, snapshots)
	sort.SliceStable(byVol, func(i, j int) bool {
		return byVol[i].QuoteVolumeUSD > byVol[j].QuoteVolumeUSD
	})

	var primaryChg, secondaryChg float64
	for _, s := range byVol {
		switch s.Symbol {
		case r.anchorPrimary:
			primaryChg = s.ChangePct24h
		case r.anchorSecondary:
			secondaryChg = s.ChangePct24h
		}
	}

	top := byVol
	if len(top) > r.breadthTopN {
		top = top[:r.breadthTopN]
	}
	changes := make([]float64, len(top))
	for i, s := range top {
		changes[i] = s.ChangePct24h
	}
	breadth := median(changes)

	idx := r.wPrimary*primaryChg + r.wSecondary*secondaryChg + r.wBreadth*breadth

	label, gate := models.RegimeNeutral, models.RegimeNeutral
	switch {
	case idx > r.strongBullish:
		label, gate = models.RegimeStrongBullish, models.RegimeBullish
	case idx > r.bullish:
		label, gate = models.RegimeBullish, models.RegimeBullish
	case idx < r.panic:
		label, gate = models.RegimePanic, models.RegimePanic
	case idx < r.bearish:
		label, gate = models.RegimeBearish, models.RegimeBearish
	}

	return &models.RegimeState{
		IndexValue: util.Round2(idx),
		Label:      label,
		Gate:       gate,
		AnchorChanges: map[string]float64{
			r.anchorPrimary:   util.Round2(primaryChg),
			r.anchorSecondary: util.Round2(secondaryChg),
		},
		BreadthMedian: util.Round2(breadth),
	}
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
