package api

import (
	"log/slog"
	"net/http"

	"github.com/codewithwu/ContractAI/internal/analyze"
	"github.com/codewithwu/ContractAI/internal/config"
	"github.com/codewithwu/ContractAI/internal/enrich"
	"github.com/codewithwu/ContractAI/internal/reportstore"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for contract analysis.
type Server struct {
	router   chi.Router
	analyzer *analyze.Analyzer
	enrich   *enrich.Client // nil when enrichment is disabled
	store    *reportstore.Store
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(analyzer *analyze.Analyzer, enrichClient *enrich.Client, store *reportstore.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		analyzer: analyzer,
		enrich:   enrichClient,
		store:    store,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/analyze", s.handleAnalyze)

		r.Get("/api/reports", s.handleListReports)
		r.Get("/api/reports/{reportID}", s.handleGetReport)
		r.Delete("/api/reports/{reportID}", s.handleDeleteReport)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
