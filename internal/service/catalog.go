package service

// NamedSymbol pairs a display name with its upstream ticker symbol.
type NamedSymbol struct {
	Name   string
	Symbol string
}

// MarketIndices is the curated set of Indian indices served by /indices,
// in presentation order.
var MarketIndices = []NamedSymbol{
	{"NIFTY 50", "^NSEI"},
	{"SENSEX", "^BSESN"},
	{"NIFTY Bank", "^NSEBANK"},
	{"NIFTY IT", "^CNXIT"},
	{"NIFTY Midcap 100", "NIFTY_MID_SELECT.NS"},
	{"NIFTY Next 50", "^NSMIDCP"},
}

// PopularStocks is the curated set of NSE stocks served by /stocks/popular,
// in presentation order.
var PopularStocks = []NamedSymbol{
	{"Reliance", "RELIANCE.NS"},
	{"TCS", "TCS.NS"},
	{"HDFC Bank", "HDFCBANK.NS"},
	{"Infosys", "INFY.NS"},
	{"ICICI Bank", "ICICIBANK.NS"},
	{"Bharti Airtel", "BHARTIARTL.NS"},
	{"SBI", "SBIN.NS"},
	{"ITC", "ITC.NS"},
	{"Kotak Bank", "KOTAKBANK.NS"},
	{"HUL", "HINDUNILVR.NS"},
	{"Bajaj Finance", "BAJFINANCE.NS"},
	{"Asian Paints", "ASIANPAINT.NS"},
	{"Maruti", "MARUTI.NS"},
	{"Titan", "TITAN.NS"},
	{"Wipro", "WIPRO.NS"},
	{"Tech Mahindra", "TECHM.NS"},
	{"HDFC Life", "HDFCLIFE.NS"},
	{"Tata Steel", "TATASTEEL.NS"},
	{"Tata Motors", "TATAMOTORS.NS"},
	{"Adani Ports", "ADANIPORTS.NS"},
}

// PopularSchemes is the curated set of mutual-fund schemes (AMFI codes)
// served by /mutual-funds/popular, in presentation order.
var PopularSchemes = []NamedSymbol{
	// Large cap
	{"HDFC Top 100 Fund - Direct Growth", "118989"},
	{"ICICI Pru Bluechip Fund - Direct Growth", "120586"},
	{"SBI Bluechip Fund - Direct Growth", "119598"},
	{"Axis Bluechip Fund - Direct Growth", "120503"},
	{"Mirae Asset Large Cap Fund - Direct Growth", "118834"},
	// Flexi cap
	{"Parag Parikh Flexi Cap Fund - Direct Growth", "122639"},
	{"HDFC Flexi Cap Fund - Direct Growth", "118955"},
	{"Kotak Flexi Cap Fund - Direct Growth", "120166"},
	{"UTI Flexi Cap Fund - Direct Growth", "120716"},
	// Mid cap
	{"Kotak Emerging Equity Fund - Direct Growth", "120175"},
	{"HDFC Mid Cap Opportunities - Direct Growth", "118953"},
	{"Axis Midcap Fund - Direct Growth", "120505"},
	// Small cap
	{"Nippon Small Cap Fund - Direct Growth", "118778"},
	{"SBI Small Cap Fund - Direct Growth", "125497"},
	{"Axis Small Cap Fund - Direct Growth", "125354"},
	// Index funds
	{"Nippon India Nifty 50 BeES", "112271"},
	// ELSS
	{"Axis Long Term Equity Fund - Direct Growth", "120507"},
	{"Mirae Asset Tax Saver - Direct Growth", "125307"},
	{"Quant Tax Plan - Direct Growth", "120823"},
	// Debt
	{"HDFC Short Term Debt - Direct Growth", "118949"},
	{"ICICI Pru Liquid Fund - Direct Growth", "120584"},
}
