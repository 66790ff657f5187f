package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finsightapp/market-data-backend/internal/cache"
	"github.com/finsightapp/market-data-backend/internal/config"
	"github.com/finsightapp/market-data-backend/internal/model"
	"github.com/finsightapp/market-data-backend/internal/service"
	"github.com/finsightapp/market-data-backend/internal/testutil"
)

func newTestQuoteService(source *testutil.MockQuoteSource) *service.QuoteService {
	return service.NewQuoteService(
		source,
		cache.New[model.Quote](),
		cache.New[[]model.MarketIndex](),
		cache.New[[]model.Quote](),
		config.MarketConfig{QuoteTTL: time.Minute, PopularTTL: time.Minute},
		testutil.NewTestLogger(),
	)
}

func TestMarketHandler_Stock(t *testing.T) {
	t.Run("returns a quote for a known symbol", func(t *testing.T) {
		source := testutil.NewMockQuoteSource().WithQuote("RELIANCE.NS", "Reliance Industries", 2850, 2800)
		handler := NewMarketHandler(newTestQuoteService(source), true, time.UTC)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/market/stock/RELIANCE", map[string]string{"symbol": "RELIANCE"})
		w := httptest.NewRecorder()

		handler.Stock(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var quote model.Quote
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&quote)

		if quote.Symbol != "RELIANCE.NS" {
			t.Errorf("Expected symbol 'RELIANCE.NS', got '%s'", quote.Symbol)
		}
		if quote.Price != 2850 {
			t.Errorf("Expected price 2850, got %v", quote.Price)
		}
		if quote.Change != 50 {
			t.Errorf("Expected change 50, got %v", quote.Change)
		}
	})

	t.Run("returns 404 for an unknown symbol", func(t *testing.T) {
		handler := NewMarketHandler(newTestQuoteService(testutil.NewMockQuoteSource()), true, time.UTC)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/market/stock/NOPE", map[string]string{"symbol": "NOPE"})
		w := httptest.NewRecorder()

		handler.Stock(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 503 when quotes are disabled", func(t *testing.T) {
		handler := NewMarketHandler(nil, false, time.UTC)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/market/stock/RELIANCE", map[string]string{"symbol": "RELIANCE"})
		w := httptest.NewRecorder()

		handler.Stock(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestMarketHandler_Indices(t *testing.T) {
	t.Run("returns the full curated set with degraded entries zeroed", func(t *testing.T) {
		source := testutil.NewMockQuoteSource().WithQuote("^NSEI", "NIFTY 50", 22000, 21900)
		handler := NewMarketHandler(newTestQuoteService(source), true, time.UTC)

		req := httptest.NewRequest(http.MethodGet, "/api/market/indices", nil)
		w := httptest.NewRecorder()

		handler.Indices(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var indices []model.MarketIndex
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&indices)

		if len(indices) != len(service.MarketIndices) {
			t.Fatalf("Expected %d indices, got %d", len(service.MarketIndices), len(indices))
		}
		if indices[0].Value != 22000 {
			t.Errorf("Expected first index value 22000, got %v", indices[0].Value)
		}
		if indices[1].Value != 0 {
			t.Errorf("Expected unresolved index zeroed, got %v", indices[1].Value)
		}
	})

	t.Run("returns 503 when quotes are disabled", func(t *testing.T) {
		handler := NewMarketHandler(nil, false, time.UTC)

		req := httptest.NewRequest(http.MethodGet, "/api/market/indices", nil)
		w := httptest.NewRecorder()

		handler.Indices(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestMarketHandler_PopularStocks(t *testing.T) {
	t.Run("returns curated quotes with display names overridden", func(t *testing.T) {
		source := testutil.NewMockQuoteSource().WithQuote("RELIANCE.NS", "RELIANCE INDUSTRIES LTD", 2850, 2800)
		handler := NewMarketHandler(newTestQuoteService(source), true, time.UTC)

		req := httptest.NewRequest(http.MethodGet, "/api/market/stocks/popular", nil)
		w := httptest.NewRecorder()

		handler.PopularStocks(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var quotes []model.Quote
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&quotes)

		if len(quotes) != 1 {
			t.Fatalf("Expected 1 resolvable quote, got %d", len(quotes))
		}
		if quotes[0].Name != "Reliance" {
			t.Errorf("Expected curated display name, got '%s'", quotes[0].Name)
		}
	})
}

func TestMarketHandler_MarketStatus(t *testing.T) {
	statusAt := func(t *testing.T, weekday time.Weekday, hour, minute int) map[string]interface{} {
		t.Helper()

		handler := NewMarketHandler(nil, false, time.UTC)
		// 2025-06-02 is a Monday.
		base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
		offset := (int(weekday) - int(time.Monday) + 7) % 7
		at := base.AddDate(0, 0, offset).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		handler.now = func() time.Time { return at }

		req := httptest.NewRequest(http.MethodGet, "/api/market/market-status", nil)
		w := httptest.NewRecorder()
		handler.MarketStatus(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var status map[string]interface{}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&status)
		return status
	}

	t.Run("reports open during the trading window", func(t *testing.T) {
		status := statusAt(t, time.Monday, 10, 0)

		if status["is_open"] != true {
			t.Errorf("Expected is_open true, got %v", status["is_open"])
		}
	})

	t.Run("reports weekend closure on Saturday", func(t *testing.T) {
		status := statusAt(t, time.Saturday, 10, 0)

		if status["is_open"] != false {
			t.Errorf("Expected is_open false, got %v", status["is_open"])
		}
		if status["next_open"] != "Monday 9:15 AM IST" {
			t.Errorf("Expected Monday reopen, got %v", status["next_open"])
		}
	})

	t.Run("responds even when quote endpoints are disabled", func(t *testing.T) {
		status := statusAt(t, time.Monday, 8, 0)

		if status["is_open"] != false {
			t.Errorf("Expected is_open false before open, got %v", status["is_open"])
		}
	})
}
