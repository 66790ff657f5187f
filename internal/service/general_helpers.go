package service

import "github.com/shopspring/decimal"

// round2 rounds a monetary value to two decimal places. Used throughout the
// service layer so prices, changes and valuation figures are consistent in
// API responses.
func round2(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}
