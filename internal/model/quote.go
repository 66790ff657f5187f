package model

import "time"

// MarketIndex is a point-in-time snapshot of an equity index.
type MarketIndex struct {
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	Value         float64   `json:"value"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	LastUpdated   time.Time `json:"last_updated"`
}

// Quote is a live price snapshot for a tradeable instrument.
// Change fields are derived from the last price and previous close;
// DayHigh, DayLow and Volume are omitted when the upstream does not
// report them.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	DayHigh       *float64  `json:"day_high,omitempty"`
	DayLow        *float64  `json:"day_low,omitempty"`
	Volume        *int64    `json:"volume,omitempty"`
	LastUpdated   time.Time `json:"last_updated"`
}
