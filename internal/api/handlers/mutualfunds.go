package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/finsightapp/market-data-backend/internal/api/response"
	"github.com/finsightapp/market-data-backend/internal/apperrors"
	"github.com/finsightapp/market-data-backend/internal/service"
	"github.com/finsightapp/market-data-backend/internal/validation"
)

// MutualFundHandler handles HTTP requests for NAV lookup and search
// endpoints.
type MutualFundHandler struct {
	navService *service.NavService
	navOn      bool
}

// NewMutualFundHandler creates a new MutualFundHandler. navOn reflects
// whether the NAV feed is configured; when false the endpoints respond 503
// without calling the service.
func NewMutualFundHandler(navService *service.NavService, navOn bool) *MutualFundHandler {
	return &MutualFundHandler{
		navService: navService,
		navOn:      navOn,
	}
}

// Nav handles GET requests for a single scheme's NAV record.
//
// Endpoint: GET /api/market/mutual-fund/{schemeCode}
// Response: 200 OK with one NavRecord
// Error: 404 Not Found if the scheme code is not in the NAV index
// Error: 503 Service Unavailable if the NAV feed is disabled
func (h *MutualFundHandler) Nav(w http.ResponseWriter, r *http.Request) {
	if !h.navOn {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrNavFeedDisabled.Error(), nil)
		return
	}

	schemeCode := chi.URLParam(r, "schemeCode")
	record, ok := h.navService.Lookup(r.Context(), schemeCode)
	if !ok {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrSchemeNotFound.Error(), schemeCode)
		return
	}

	response.RespondJSON(w, http.StatusOK, record)
}

// Search handles GET requests for a case-insensitive scheme-name search.
//
// Endpoint: GET /api/market/mutual-funds/search?query=&limit=
// Response: 200 OK with array of NavRecord
// Error: 400 Bad Request if the query is shorter than 3 characters or the
// limit is outside 1-100
// Error: 503 Service Unavailable if the NAV feed is disabled
func (h *MutualFundHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !h.navOn {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrNavFeedDisabled.Error(), nil)
		return
	}

	query := r.URL.Query().Get("query")
	if err := validation.ValidateSearchQuery(query); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid search query", err.Error())
		return
	}

	limit := validation.DefaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid limit", apperrors.ErrInvalidLimit.Error())
			return
		}
		limit = parsed
	}
	if err := validation.ValidateSearchLimit(limit); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid limit", err.Error())
		return
	}

	records := h.navService.Search(r.Context(), query, limit)
	response.RespondJSON(w, http.StatusOK, records)
}

// Popular handles GET requests for the curated mutual-fund scheme list.
//
// Endpoint: GET /api/market/mutual-funds/popular
// Response: 200 OK with array of NavRecord
// Error: 503 Service Unavailable if the NAV feed is disabled
func (h *MutualFundHandler) Popular(w http.ResponseWriter, r *http.Request) {
	if !h.navOn {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrNavFeedDisabled.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, h.navService.Popular(r.Context()))
}
