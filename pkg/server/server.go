// Package server exposes the dashboard and a small JSON API over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/marcvidal/macroradar/internal/store"
	"github.com/marcvidal/macroradar/pkg/render"
	"github.com/marcvidal/macroradar/pkg/scoring"
)

// Scanner triggers a full scrape/score cycle on demand.
type Scanner interface {
	Cycle(ctx context.Context) error
}

// Server provides the HTTP API and the live dashboard.
type Server struct {
	store    store.Store
	renderer *render.Renderer
	scanner  Scanner
	topN     int
	port     int
	log      *slog.Logger
}

// New creates a new HTTP server.
func New(s store.Store, renderer *render.Renderer, scanner Scanner, topN, port int, log *slog.Logger) *Server {
	if port == 0 {
		port = 8080
	}
	if topN == 0 {
		topN = 20
	}
	return &Server{
		store:    s,
		renderer: renderer,
		scanner:  scanner,
		topN:     topN,
		port:     port,
		log:      log,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("server listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Handler builds the route mux. Split out for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/articles", s.handleArticles)
	mux.HandleFunc("GET /api/v1/top", s.handleTop)
	mux.HandleFunc("GET /api/v1/sources", s.handleSources)
	mux.HandleFunc("POST /api/v1/scan", s.handleScan)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.ListArticles(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	page, err := s.renderer.RenderHTML(articles, scoring.TopArticles(articles, s.topN))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.ListArticles(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  articles,
		"count": len(articles),
	})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.ListArticles(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	top := scoring.TopArticles(articles, s.topN)
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  top,
		"count": len(top),
	})
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.CountBySource(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  counts,
		"count": len(counts),
	})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if s.scanner == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "scanner not configured"})
		return
	}
	if err := s.scanner.Cycle(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "scan complete"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
