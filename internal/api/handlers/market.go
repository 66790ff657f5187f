package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/finsightapp/market-data-backend/internal/api/response"
	"github.com/finsightapp/market-data-backend/internal/apperrors"
	"github.com/finsightapp/market-data-backend/internal/market"
	"github.com/finsightapp/market-data-backend/internal/service"
)

// MarketHandler handles HTTP requests for index and stock quote endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the quote service.
type MarketHandler struct {
	quoteService *service.QuoteService
	quotesOn     bool
	location     *time.Location

	// now is an injection point for tests; defaults to time.Now.
	now func() time.Time
}

// NewMarketHandler creates a new MarketHandler. quotesOn reflects whether
// the live-quote upstream is configured; when false the quote endpoints
// respond 503 without calling the service. location is the trading-session
// timezone for the market-status endpoint.
func NewMarketHandler(quoteService *service.QuoteService, quotesOn bool, location *time.Location) *MarketHandler {
	return &MarketHandler{
		quoteService: quoteService,
		quotesOn:     quotesOn,
		location:     location,
		now:          time.Now,
	}
}

// Indices handles GET requests for the curated market index quotes.
//
// Endpoint: GET /api/market/indices
// Response: 200 OK with array of MarketIndex
// Error: 503 Service Unavailable if the quote upstream is disabled or
// unreachable with no cached data
func (h *MarketHandler) Indices(w http.ResponseWriter, r *http.Request) {
	if !h.quotesOn {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrQuotesDisabled.Error(), nil)
		return
	}

	indices, err := h.quoteService.Indices(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "failed to retrieve indices", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, indices)
}

// Stock handles GET requests for a single stock quote.
//
// Endpoint: GET /api/market/stock/{symbol}
// Response: 200 OK with one Quote
// Error: 404 Not Found if the symbol has no quote
// Error: 503 Service Unavailable if the quote upstream is disabled
func (h *MarketHandler) Stock(w http.ResponseWriter, r *http.Request) {
	if !h.quotesOn {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrQuotesDisabled.Error(), nil)
		return
	}

	symbol := chi.URLParam(r, "symbol")
	quote, err := h.quoteService.GetQuote(r.Context(), symbol)
	if err != nil {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrQuoteUnavailable.Error(), symbol)
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}

// PopularStocks handles GET requests for the curated stock list.
//
// Endpoint: GET /api/market/stocks/popular
// Response: 200 OK with array of Quote
// Error: 503 Service Unavailable if the quote upstream is disabled or
// unreachable with no cached data
func (h *MarketHandler) PopularStocks(w http.ResponseWriter, r *http.Request) {
	if !h.quotesOn {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrQuotesDisabled.Error(), nil)
		return
	}

	quotes, err := h.quoteService.PopularStocksQuotes(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "failed to retrieve popular stocks", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}

// MarketStatus handles GET requests for the trading-session status,
// evaluated in the configured market timezone.
//
// Endpoint: GET /api/market/market-status
// Response: 200 OK with the session status
func (h *MarketHandler) MarketStatus(w http.ResponseWriter, r *http.Request) {
	status := market.SessionStatus(h.now().In(h.location))
	response.RespondJSON(w, http.StatusOK, status)
}
