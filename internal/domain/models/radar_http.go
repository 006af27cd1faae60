package models

// Requests for radar HTTP endpoints. Defined in domain for consistency and reuse.

type TopPicksRequest struct {
	Limit int  `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=50"`
	Force bool `query:"force" json:"force"`
}

type ScalpRequest struct {
	Force bool `query:"force" json:"force"`
}

type WhaleRequest struct {
	Force bool `query:"force" json:"force"`
}

type IndicatorsRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required"`
	Interval string `query:"interval" json:"interval" default:"4h" validate:"oneof=1m 5m 15m 30m 1h 4h 1d 1w"`
}
