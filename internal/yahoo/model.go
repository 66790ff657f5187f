package yahoo

// Response represents the raw JSON response structure from the Yahoo Finance
// quote API. This type maps directly to the v7 quote endpoint format:
//
//   - QuoteResponse.Result: one entry per resolved symbol, in request order
//   - QuoteResponse.Error: optional error object from the API
//
// Unresolved symbols are simply absent from Result; the API does not error
// for them.
type Response struct {
	QuoteResponse struct {
		Result []Result  `json:"result"`
		Error  *APIError `json:"error"`
	} `json:"quoteResponse"`
}

// APIError is the error object Yahoo embeds in an otherwise-valid response.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Result is a single symbol's quote as reported by Yahoo Finance.
// Day-range and volume fields are pointers because Yahoo omits them for
// some instrument classes (notably indices outside trading hours).
type Result struct {
	Symbol                     string   `json:"symbol"`
	ShortName                  string   `json:"shortName"`
	LongName                   string   `json:"longName"`
	RegularMarketPrice         float64  `json:"regularMarketPrice"`
	RegularMarketPreviousClose float64  `json:"regularMarketPreviousClose"`
	RegularMarketDayHigh       *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *float64 `json:"regularMarketDayLow"`
	RegularMarketVolume        *int64   `json:"regularMarketVolume"`
}
