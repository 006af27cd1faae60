// Package analytics holds the pure pipeline stages: snapshot
// normalization, regime classification, scoring, signal enrichment,
// scalp filtering and whale detection. No I/O happens here.
package analytics

import (
	"strings"

	"TradeRadar/internal/domain/models"
	"TradeRadar/pkg/config"
	"TradeRadar/pkg/util"
)

// Normalizer converts a raw ticker list into tradeable symbol snapshots.
type Normalizer struct {
	quoteAsset        string
	stableBases       map[string]struct{}
	leveragedSuffixes []string
}

func NewNormalizer(cfg *config.Config) *Normalizer {
	stables := make(map[string]struct{}, len(cfg.Radar.StableBases))
	for _, s := range cfg.Radar.StableBases {
		stables[s] = struct{}{}
	}
	return &Normalizer{
		quoteAsset:        cfg.Radar.QuoteAsset,
		stableBases:       stables,
		leveragedSuffixes: cfg.Radar.LeveragedSuffixes,
	}
}

// Normalize filters and parses raw tickers into SymbolSnapshots,
// order-stable relative to the input. Records with non-positive price
// or volume are dropped, never defaulted.
func (n *Normalizer) Normalize(tickers []models.RawTicker) []models.SymbolSnapshot {
	out := make([]models.SymbolSnapshot, 0, len(tickers))
	for _, t := range tickers {
		pair := t.Symbol
		if !strings.HasSuffix(pair, n.quoteAsset) {
			continue
		}
		if n.isLeveraged(pair) {
			continue
		}

		base := strings.TrimSuffix(pair, n.quoteAsset)
		if base == "" {
			continue
		}
		if _, skip := n.stableBases[base]; skip {
			continue
		}

		last := util.ParseFloatDefault(t.LastPrice, 0)
		chg := util.ParseFloatDefault(t.PriceChangePercent, 0)
		vol := util.ParseFloatDefault(t.QuoteVolume, 0)
		if last <= 0 || vol <= 0 {
			continue
		}

		out = append(out, models.SymbolSnapshot{
			Symbol:         base,
			PairID:         pair,
			LastPrice:      last,
			ChangePct24h:   chg,
			QuoteVolumeUSD: vol,
		})
	}
	return out
}

func (n *Normalizer) isLeveraged(pair string) bool {
	for _, suffix := range n.leveragedSuffixes {
		if strings.HasSuffix(pair, suffix) {
			return true
		}
	}
	return false
}
