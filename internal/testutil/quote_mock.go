package testutil

import (
	"context"

	"github.com/finsightapp/market-data-backend/internal/yahoo"
)

// MockQuoteSource is a mock implementation of the service.QuoteSource
// interface. It returns predefined results instead of calling the Yahoo
// Finance API.
type MockQuoteSource struct {
	// Results to return from QueryQuotes, keyed by symbol. Symbols absent
	// from the map are omitted from the response, mirroring the upstream.
	Results map[string]yahoo.Result
	// Err is returned from QueryQuotes when set.
	Err error
	// QueryCount tracks how many upstream round trips were made.
	QueryCount int
	// LastSymbols records the symbols of the most recent call.
	LastSymbols []string
}

// NewMockQuoteSource creates a mock with an empty result set.
func NewMockQuoteSource() *MockQuoteSource {
	return &MockQuoteSource{Results: make(map[string]yahoo.Result)}
}

// QueryQuotes returns the configured results for the requested symbols.
func (m *MockQuoteSource) QueryQuotes(_ context.Context, symbols []string) ([]yahoo.Result, error) {
	m.QueryCount++
	m.LastSymbols = symbols
	if m.Err != nil {
		return nil, m.Err
	}

	var results []yahoo.Result
	for _, sym := range symbols {
		if r, ok := m.Results[sym]; ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// WithQuote configures the mock to resolve symbol at the given last price
// and previous close.
func (m *MockQuoteSource) WithQuote(symbol, name string, price, previousClose float64) *MockQuoteSource {
	m.Results[symbol] = yahoo.Result{
		Symbol:                     symbol,
		ShortName:                  name,
		RegularMarketPrice:         price,
		RegularMarketPreviousClose: previousClose,
	}
	return m
}

// WithError configures the mock to fail every round trip.
func (m *MockQuoteSource) WithError(err error) *MockQuoteSource {
	m.Err = err
	return m
}
