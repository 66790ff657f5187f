package model

// NavRecord is one mutual-fund scheme's net asset value as published in the
// AMFI daily report. Category and FundHouse come from the header lines that
// precede the record in the flat file and may be absent.
type NavRecord struct {
	SchemeCode string  `json:"scheme_code"`
	SchemeName string  `json:"scheme_name"`
	Nav        float64 `json:"nav"`
	NavDate    string  `json:"nav_date"`
	Category   *string `json:"category,omitempty"`
	FundHouse  *string `json:"fund_house,omitempty"`
}
