// Package main is the entry point for the TickerMind market data service.
// It resolves free-text company names to ticker symbols, serves quotes,
// history, technical analysis, and market overviews, and maintains a
// persistent response cache.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tickermind/tickermind/internal/clientdata"
	"github.com/tickermind/tickermind/internal/clients/yahoo"
	"github.com/tickermind/tickermind/internal/config"
	"github.com/tickermind/tickermind/internal/database"
	"github.com/tickermind/tickermind/internal/modules/analysis"
	analysishandlers "github.com/tickermind/tickermind/internal/modules/analysis/handlers"
	"github.com/tickermind/tickermind/internal/modules/market"
	markethandlers "github.com/tickermind/tickermind/internal/modules/market/handlers"
	"github.com/tickermind/tickermind/internal/modules/quotes"
	quoteshandlers "github.com/tickermind/tickermind/internal/modules/quotes/handlers"
	"github.com/tickermind/tickermind/internal/modules/resolver"
	resolverhandlers "github.com/tickermind/tickermind/internal/modules/resolver/handlers"
	"github.com/tickermind/tickermind/internal/refdata"
	"github.com/tickermind/tickermind/internal/scheduler"
	"github.com/tickermind/tickermind/internal/server"
	"github.com/tickermind/tickermind/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting TickerMind")

	// Persistent response cache.
	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "client_data.db"),
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	if err := clientdata.EnsureSchema(cacheDB.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure cache schema")
	}
	cacheRepo := clientdata.NewRepository(cacheDB.Conn())

	// Reference dataset. A load failure degrades to the curated table only -
	// resolution still works, just with less index coverage.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 60*time.Second)
	rows, err := refdata.Load(loadCtx, cfg.ReferenceCSV, log)
	loadCancel()
	if err != nil {
		log.Warn().Err(err).Str("location", cfg.ReferenceCSV).
			Msg("Reference dataset unavailable, continuing with curated entries only")
		rows = nil
	}

	referenceRows := make([]resolver.ReferenceRow, len(rows))
	for i, row := range rows {
		referenceRows[i] = resolver.ReferenceRow{CompanyName: row.CompanyName, Ticker: row.Ticker}
	}
	index := resolver.BuildIndex(referenceRows, refdata.CuratedGlobal(), log)

	// Market data client and services.
	yahooClient := yahoo.NewClient(cfg.YahooBaseURL, cacheRepo, log)

	resolverService := resolver.NewService(
		index,
		yahooClient,
		yahooClient,
		time.Duration(cfg.SearchTimeoutSeconds)*time.Second,
		log,
	)
	quotesService := quotes.NewService(yahooClient, log)
	analysisService := analysis.NewService(yahooClient, log)
	marketService := market.NewService(yahooClient, log)

	// Background cache maintenance.
	sched := scheduler.New(log)
	cleanupJob := clientdata.NewCleanupJob(cacheRepo, log)
	if err := sched.AddJob("0 0 * * * *", cleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache cleanup job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:              log,
		Cfg:              cfg,
		CacheDB:          cacheDB,
		ResolverHandlers: resolverhandlers.NewHandler(resolverService, cfg.PreferRegional, log),
		QuotesHandlers:   quoteshandlers.NewHandler(quotesService, log),
		AnalysisHandlers: analysishandlers.NewHandler(analysisService, log),
		MarketHandlers:   markethandlers.NewHandler(marketService, log),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
