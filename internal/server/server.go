// Package server provides the HTTP server and routing for TickerMind.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/tickermind/tickermind/internal/config"
	"github.com/tickermind/tickermind/internal/database"
	analysishandlers "github.com/tickermind/tickermind/internal/modules/analysis/handlers"
	markethandlers "github.com/tickermind/tickermind/internal/modules/market/handlers"
	quoteshandlers "github.com/tickermind/tickermind/internal/modules/quotes/handlers"
	resolverhandlers "github.com/tickermind/tickermind/internal/modules/resolver/handlers"
)

// Config holds everything the server needs to route requests.
type Config struct {
	Log     zerolog.Logger
	Cfg     *config.Config
	CacheDB *database.DB

	ResolverHandlers *resolverhandlers.Handler
	QuotesHandlers   *quoteshandlers.Handler
	AnalysisHandlers *analysishandlers.Handler
	MarketHandlers   *markethandlers.Handler
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	systemHandlers *SystemHandlers

	resolverHandlers *resolverhandlers.Handler
	quotesHandlers   *quoteshandlers.Handler
	analysisHandlers *analysishandlers.Handler
	marketHandlers   *markethandlers.Handler
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:           chi.NewRouter(),
		log:              cfg.Log.With().Str("component", "server").Logger(),
		cfg:              cfg.Cfg,
		systemHandlers:   NewSystemHandlers(cfg.Log, cfg.Cfg.DataDir, cfg.CacheDB),
		resolverHandlers: cfg.ResolverHandlers,
		quotesHandlers:   cfg.QuotesHandlers,
		analysisHandlers: cfg.AnalysisHandlers,
		marketHandlers:   cfg.MarketHandlers,
	}

	s.setupMiddleware(cfg.Cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/system/status", s.systemHandlers.HandleStatus)

		if s.resolverHandlers != nil {
			s.resolverHandlers.RegisterRoutes(r)
		}
		if s.quotesHandlers != nil {
			s.quotesHandlers.RegisterRoutes(r)
		}
		if s.analysisHandlers != nil {
			s.analysisHandlers.RegisterRoutes(r)
		}
		if s.marketHandlers != nil {
			s.marketHandlers.RegisterRoutes(r)
		}
	})
}

// handleHealth responds to liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","timestamp":%q}`, time.Now().Format(time.RFC3339))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the underlying router, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
