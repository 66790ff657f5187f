package handlers

import (
	"net/http"
	"time"

	"github.com/finsightapp/market-data-backend/internal/api/response"
	"github.com/finsightapp/market-data-backend/internal/config"
	"github.com/finsightapp/market-data-backend/internal/service"
)

// SystemHandler handles liveness and capability probes.
type SystemHandler struct {
	navService *service.NavService
	features   config.Features

	// now is an injection point for tests; defaults to time.Now.
	now func() time.Time
}

// NewSystemHandler creates a new SystemHandler. navService may be nil when
// the NAV feed is disabled.
func NewSystemHandler(navService *service.NavService, features config.Features) *SystemHandler {
	return &SystemHandler{
		navService: navService,
		features:   features,
		now:        time.Now,
	}
}

// NavCacheStatus describes the in-memory NAV index for the health probe.
type NavCacheStatus struct {
	Schemes     int      `json:"schemes"`
	LastRefresh *string  `json:"last_refresh"`
	AgeSeconds  *float64 `json:"age_seconds"`
}

// HealthResponse represents the health check response. Status is "ready"
// when every upstream integration is enabled and "degraded" otherwise; a
// degraded process keeps serving the endpoints that remain available.
type HealthResponse struct {
	Status   string          `json:"status"`
	Features map[string]bool `json:"features"`
	NavCache *NavCacheStatus `json:"nav_cache,omitempty"`
}

// Health reports upstream capability flags and NAV cache freshness.
//
// Endpoint: GET /api/market/health
// Response: 200 OK with HealthResponse
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	if !h.features.Quotes || !h.features.Nav {
		status = "degraded"
	}

	resp := HealthResponse{
		Status: status,
		Features: map[string]bool{
			"quotes": h.features.Quotes,
			"nav":    h.features.Nav,
		},
	}

	if h.navService != nil {
		schemes, lastRefresh := h.navService.Stats()
		cacheStatus := &NavCacheStatus{Schemes: schemes}
		if !lastRefresh.IsZero() {
			refreshedAt := lastRefresh.UTC().Format(time.RFC3339)
			age := h.now().Sub(lastRefresh).Seconds()
			cacheStatus.LastRefresh = &refreshedAt
			cacheStatus.AgeSeconds = &age
		}
		resp.NavCache = cacheStatus
	}

	response.RespondJSON(w, http.StatusOK, resp)
}
