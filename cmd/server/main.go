package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/finsightapp/market-data-backend/internal/amfi"
	"github.com/finsightapp/market-data-backend/internal/api"
	"github.com/finsightapp/market-data-backend/internal/cache"
	"github.com/finsightapp/market-data-backend/internal/config"
	"github.com/finsightapp/market-data-backend/internal/market"
	"github.com/finsightapp/market-data-backend/internal/model"
	"github.com/finsightapp/market-data-backend/internal/navstore"
	"github.com/finsightapp/market-data-backend/internal/service"
	"github.com/finsightapp/market-data-backend/internal/yahoo"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	location, err := market.LoadLocation(cfg.Market.Timezone)
	if err != nil {
		log.WithError(err).WithField("timezone", cfg.Market.Timezone).
			Warn("unknown market timezone, using server local time")
	}

	services := api.Services{}

	if cfg.Features.Quotes {
		quoteClient := yahoo.NewFinanceClient(cfg.Market.QuoteBaseURL, cfg.Market.FetchTimeout)
		services.Quotes = service.NewQuoteService(
			quoteClient,
			cache.New[model.Quote](),
			cache.New[[]model.MarketIndex](),
			cache.New[[]model.Quote](),
			cfg.Market,
			log,
		)
	} else {
		log.Warn("live quotes disabled, quote endpoints will answer 503")
	}

	scheduler := cron.New()
	if cfg.Features.Nav {
		// Snapshot persistence is optional; without it a restart refetches
		// the NAV report on first lookup.
		var store service.SnapshotStore
		if cfg.Snapshot.Path != "" {
			snapshots, err := navstore.Open(cfg.Snapshot.Path)
			if err != nil {
				log.WithError(err).Fatal("failed to open nav snapshot store")
			}
			defer snapshots.Close()
			store = snapshots
			log.WithField("path", cfg.Snapshot.Path).Info("nav snapshot store opened")
		}

		navClient := amfi.NewClient(cfg.Market.NavURL, cfg.Market.FetchTimeout)
		services.Navs = service.NewNavService(
			navClient,
			store,
			cache.New[[]model.NavRecord](),
			cfg.Market,
			log,
		)
		services.Navs.RestoreSnapshot()

		// Background refresh keeps the index warm so lookups rarely pay the
		// fetch latency. The service re-checks freshness itself, so overlap
		// with request-driven refreshes is harmless.
		spec := fmt.Sprintf("@every %s", cfg.Market.NavRefreshInterval)
		if _, err := scheduler.AddFunc(spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Market.FetchTimeout)
			defer cancel()
			services.Navs.Refresh(ctx)
		}); err != nil {
			log.WithError(err).Fatal("failed to schedule nav refresh")
		}
		scheduler.Start()
		defer scheduler.Stop()
	} else {
		log.Warn("nav feed disabled, mutual-fund endpoints will answer 503")
	}

	// Valuation only requires the quote source; a nil NAV service makes
	// mutual-fund items fall through to the default growth policy.
	if services.Quotes != nil {
		services.Valuation = service.NewValuationService(services.Quotes, services.Navs, cfg.Market.Growth, log)
	}

	// Create router
	router := api.NewRouter(services, cfg, location, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}
