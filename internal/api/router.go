package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/finsightapp/market-data-backend/internal/api/handlers"
	custommiddleware "github.com/finsightapp/market-data-backend/internal/api/middleware"
	"github.com/finsightapp/market-data-backend/internal/config"
	"github.com/finsightapp/market-data-backend/internal/service"
)

// Services bundles the service-layer dependencies the router wires into
// handlers. Quotes and Navs may be nil when the matching capability flag is
// off; the handlers then answer 503 for the affected endpoints.
type Services struct {
	Quotes    *service.QuoteService
	Navs      *service.NavService
	Valuation *service.ValuationService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config, location *time.Location, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api/market", func(r chi.Router) {
		marketHandler := handlers.NewMarketHandler(services.Quotes, cfg.Features.Quotes, location)
		r.Get("/indices", marketHandler.Indices)
		r.Get("/stock/{symbol}", marketHandler.Stock)
		r.Get("/stocks/popular", marketHandler.PopularStocks)
		r.Get("/market-status", marketHandler.MarketStatus)

		fundHandler := handlers.NewMutualFundHandler(services.Navs, cfg.Features.Nav)
		r.Get("/mutual-fund/{schemeCode}", fundHandler.Nav)
		r.Get("/mutual-funds/search", fundHandler.Search)
		r.Get("/mutual-funds/popular", fundHandler.Popular)

		// Valuation is gated on the quote source only; a disabled NAV feed
		// degrades mutual-fund items through the pricing policy instead.
		portfolioHandler := handlers.NewPortfolioHandler(services.Valuation, cfg.Features.Quotes)
		r.Post("/portfolio/valuate", portfolioHandler.Valuate)

		systemHandler := handlers.NewSystemHandler(services.Navs, cfg.Features)
		r.Get("/health", systemHandler.Health)
	})

	return r
}
