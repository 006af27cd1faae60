package models

import "time"

// RawTicker is one entry of the exchange's bulk 24h ticker endpoint.
// Numeric fields arrive as strings and are parsed downstream with fallbacks.
type RawTicker struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
	QuoteVolume        string `json:"quoteVolume"`
}

// Candle is one OHLCV record, ordered oldest to newest in a series.
type Candle struct {
	OpenTime time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
}

// RawTrade is one entry of the recent-trades endpoint.
// IsBuyerMaker true means the taker was a seller (SELL aggressor).
type RawTrade struct {
	ID           int64  `json:"id"`
	Price        string `json:"price"`
	Qty          string `json:"qty"`
	QuoteQty     string `json:"quoteQty"`
	Time         int64  `json:"time"`
	IsBuyerMaker bool   `json:"isBuyerMaker"`
}

// SymbolSnapshot is a cleaned tradeable-pair record produced per polling
// cycle by the normalizer. Price and quote volume are always positive.
type SymbolSnapshot struct {
	Symbol         string  `json:"symbol"`
	PairID         string  `json:"pair_id"`
	LastPrice      float64 `json:"last_price"`
	ChangePct24h   float64 `json:"change_pct_24h"`
	QuoteVolumeUSD float64 `json:"quote_volume_usd"`
}
