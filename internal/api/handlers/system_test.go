package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finsightapp/market-data-backend/internal/config"
)

func TestSystemHandler_Health(t *testing.T) {
	t.Run("returns ready with nav cache stats when everything is enabled", func(t *testing.T) {
		navs := newTestNavService()
		// Warm the index so the probe reports a populated cache.
		navs.Lookup(context.Background(), "101")

		handler := NewSystemHandler(navs, config.Features{Quotes: true, Nav: true})
		handler.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

		req := httptest.NewRequest(http.MethodGet, "/api/market/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != "ready" {
			t.Errorf("Expected status 'ready', got '%s'", response.Status)
		}
		if !response.Features["quotes"] || !response.Features["nav"] {
			t.Errorf("Expected both features enabled, got %v", response.Features)
		}
		if response.NavCache == nil {
			t.Fatal("Expected nav cache stats")
		}
		if response.NavCache.Schemes != 4 {
			t.Errorf("Expected 4 cached schemes, got %d", response.NavCache.Schemes)
		}
		if response.NavCache.AgeSeconds == nil || *response.NavCache.AgeSeconds <= 0 {
			t.Errorf("Expected positive cache age, got %v", response.NavCache.AgeSeconds)
		}
	})

	t.Run("reports degraded when an upstream is disabled", func(t *testing.T) {
		handler := NewSystemHandler(nil, config.Features{Quotes: true, Nav: false})

		req := httptest.NewRequest(http.MethodGet, "/api/market/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != "degraded" {
			t.Errorf("Expected status 'degraded', got '%s'", response.Status)
		}
		if response.NavCache != nil {
			t.Errorf("Expected no nav cache stats, got %+v", response.NavCache)
		}
	})

	t.Run("reports an unrefreshed cache without timestamps", func(t *testing.T) {
		handler := NewSystemHandler(newTestNavService(), config.Features{Quotes: true, Nav: true})

		req := httptest.NewRequest(http.MethodGet, "/api/market/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.NavCache == nil {
			t.Fatal("Expected nav cache stats")
		}
		if response.NavCache.Schemes != 0 {
			t.Errorf("Expected empty cache, got %d schemes", response.NavCache.Schemes)
		}
		if response.NavCache.LastRefresh != nil {
			t.Errorf("Expected no refresh timestamp, got %v", *response.NavCache.LastRefresh)
		}
	})
}
