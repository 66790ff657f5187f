package model

import "time"

// Asset type tags accepted on portfolio items.
const (
	AssetStock      = "stock"
	AssetMutualFund = "mutual_fund"
	AssetIndex      = "index"
	AssetETF        = "etf"
	AssetOther      = "other"
)

// PortfolioItem is one holding submitted for valuation. Symbol applies to
// stocks and ETFs, SchemeCode to mutual funds; both are optional and the
// valuation policy degrades to estimated growth when they are missing.
type PortfolioItem struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Symbol       *string  `json:"symbol,omitempty"`
	SchemeCode   *string  `json:"scheme_code,omitempty"`
	Invested     float64  `json:"invested"`
	Units        *float64 `json:"units,omitempty"`
	PurchaseDate *string  `json:"purchase_date,omitempty"`
}

// PortfolioValuation is the priced counterpart of a PortfolioItem.
// Returns and ReturnsPercent are always derived from Invested and
// CurrentValue, whichever pricing tier produced the value.
// All monetary values are rounded to two decimal places.
type PortfolioValuation struct {
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Invested       float64   `json:"invested"`
	CurrentValue   float64   `json:"current_value"`
	Returns        float64   `json:"returns"`
	ReturnsPercent float64   `json:"returns_percent"`
	CurrentPrice   float64   `json:"current_price"`
	LastUpdated    time.Time `json:"last_updated"`
}
