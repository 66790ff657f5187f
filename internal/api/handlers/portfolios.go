package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finsightapp/market-data-backend/internal/api/request"
	"github.com/finsightapp/market-data-backend/internal/api/response"
	"github.com/finsightapp/market-data-backend/internal/apperrors"
	"github.com/finsightapp/market-data-backend/internal/service"
	"github.com/finsightapp/market-data-backend/internal/validation"
)

// PortfolioHandler handles HTTP requests for portfolio valuation.
type PortfolioHandler struct {
	valuationService *service.ValuationService
	quotesOn         bool
}

// NewPortfolioHandler creates a new PortfolioHandler. quotesOn reflects
// whether the live-quote upstream is configured; without it the endpoint
// responds 503. A disabled NAV feed is not gated here: mutual-fund items
// simply degrade through the valuation policy.
func NewPortfolioHandler(valuationService *service.ValuationService, quotesOn bool) *PortfolioHandler {
	return &PortfolioHandler{
		valuationService: valuationService,
		quotesOn:         quotesOn,
	}
}

// Valuate handles POST requests to price a batch of portfolio items. The
// body is a bare JSON array of items; one valuation is returned per item,
// in request order, and items whose pricing fails degrade individually
// rather than failing the batch.
//
// Endpoint: POST /api/market/portfolio/valuate
// Request: JSON array of PortfolioItem
// Response: 200 OK with array of PortfolioValuation, same order as request
// Error: 400 Bad Request if the body is malformed or an item is invalid
// Error: 503 Service Unavailable if the quote upstream is disabled
func (h *PortfolioHandler) Valuate(w http.ResponseWriter, r *http.Request) {
	if !h.quotesOn {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrQuotesDisabled.Error(), nil)
		return
	}

	var req request.ValuatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateValuatePortfolio(req); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return
		}
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	valuations := h.valuationService.Valuate(r.Context(), req)
	response.RespondJSON(w, http.StatusOK, valuations)
}
