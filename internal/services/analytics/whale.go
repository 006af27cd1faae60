package analytics

import (
	"time"

	"TradeRadar/internal/domain/models"
	"TradeRadar/pkg/config"
	"TradeRadar/pkg/util"
)

// WhaleDetector scans trade tapes for large prints and accumulates
// buy/sell pressure per symbol.
type WhaleDetector struct {
	thresholdUSD float64
}

func NewWhaleDetector(cfg *config.Config) *WhaleDetector {
	return &WhaleDetector{thresholdUSD: cfg.Whale.ThresholdUSD}
}

// ScanTape classifies every trade's aggressor side and emits a whale
// event for each print at or above the notional threshold. The maker
// flag true means the taker sold.
func (w *WhaleDetector) ScanTape(symbol, pairID string, trades []models.RawTrade) ([]*models.WhaleEvent, *models.PressureRecord) {
	var events []*models.WhaleEvent
	var buyNotional, sellNotional float64
	hits := 0

	for _, tr := range trades {
		price := util.ParseFloatDefault(tr.Price, 0)
		qty := util.ParseFloatDefault(tr.Qty, 0)
		notional := price * qty

		side := models.SideBuy
		if tr.IsBuyerMaker {
			side = models.SideSell
			sellNotional += notional
		} else {
			buyNotional += notional
		}

		if notional >= w.thresholdUSD {
			hits++
			events = append(events, &models.WhaleEvent{
				Symbol:      symbol,
				PairID:      pairID,
				Side:        side,
				NotionalUSD: util.Round2(notional),
				Price:       util.RoundN(price, 8),
				Qty:         util.RoundN(qty, 6),
				Timestamp:   time.UnixMilli(tr.Time).UTC(),
			})
		}
	}

	total := buyNotional + sellNotional
	pressureIdx := 0.0
	if total > 0 {
		pressureIdx = (buyNotional - sellNotional) / total * 100.0
	}

	record := &models.PressureRecord{
		Symbol:        symbol,
		PairID:        pairID,
		BuyNotional:   util.Round2(buyNotional),
		SellNotional:  util.Round2(sellNotional),
		PressureIndex: util.Round1(pressureIdx),
		WhaleHits:     hits,
	}
	return events, record
}
