package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lazypower/ctxport/internal/pipeline"
	"github.com/lazypower/ctxport/internal/vault"
)

// Server is the ctxport HTTP API server.
type Server struct {
	db         *vault.DB
	summarizer pipeline.Summarizer
	aiEnabled  bool
	router     chi.Router
	version    string
	started    time.Time
}

// New creates a new Server. The summarizer may be nil, in which case
// compression is rule-based only.
func New(db *vault.DB, summarizer pipeline.Summarizer, aiEnabled bool, version string) *Server {
	s := &Server{
		db:         db,
		summarizer: summarizer,
		aiEnabled:  aiEnabled,
		version:    version,
		started:    time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/compress", s.handleCompress)
		r.Post("/export", s.handleExport)
		r.Post("/scrape", s.handleScrape)

		r.Get("/projects", s.handleListProjects)
		r.Post("/projects/{name}/contexts", s.handleSaveContext)
		r.Get("/projects/{projectID}/latest", s.handleLatestContext)
		r.Get("/projects/{projectID}/contexts", s.handleListContexts)
		r.Delete("/projects/{projectID}", s.handleDeleteProject)

		r.Post("/teleport", s.handleTeleport)
		r.Get("/handoff", s.handleHandoff)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
		"ai":      s.aiEnabled,
	})
}
