// Package server provides the HTTP API over a single session.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/papermind/docstudio/internal/assistant"
	"github.com/papermind/docstudio/internal/config"
	"github.com/papermind/docstudio/internal/export"
	"github.com/papermind/docstudio/internal/session"
	"go.uber.org/zap"
)

// Server is the HTTP front end. It serves exactly one session: the core
// assumes single-session usage, and multi-session deployments run one server
// (and one session) per user.
type Server struct {
	session   *session.Session
	assistant *assistant.Assistant
	watermark *export.Watermark
	model     string
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies. model is the
// resolved generation model identifier, reported by the status endpoint.
func NewServer(
	sess *session.Session,
	asst *assistant.Assistant,
	wm *export.Watermark,
	model string,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		session:   sess,
		assistant: asst,
		watermark: wm,
		model:     model,
		config:    cfg,
		logger:    logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/documents", s.handleUpload)
	r.Get("/api/v1/documents", s.handleListDocuments)
	r.Delete("/api/v1/documents/{id}", s.handleDeleteDocument)
	r.Delete("/api/v1/documents", s.handleClearDocuments)
	r.Post("/api/v1/ask", s.handleAsk)
	r.Post("/api/v1/chat", s.handleChat)
	r.Get("/api/v1/history", s.handleHistory)
	r.Delete("/api/v1/history", s.handleClearHistory)
	r.Post("/api/v1/tools/summarize", s.handleSummarize)
	r.Post("/api/v1/tools/notes", s.handleNotes)
	r.Post("/api/v1/tools/mcqs", s.handleMCQs)
	r.Post("/api/v1/tools/flashcards", s.handleFlashcards)
	r.Post("/api/v1/tools/keywords", s.handleKeywords)
	r.Post("/api/v1/tools/analyze", s.handleAnalyze)
	r.Post("/api/v1/tools/compare", s.handleCompare)
	r.Post("/api/v1/export", s.handleExport)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr), zap.String("model", s.model))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
