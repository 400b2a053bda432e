// Package api exposes the orchestration layer over an HTTP JSON API for
// the web/desktop frontend.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os/exec"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mos1128/scoop-easy/internal/service"
)

// Server wires the service layer to HTTP routes.
type Server struct {
	svc       *service.Service
	router    *chi.Mux
	logger    *slog.Logger
	staticDir string
}

// Config carries server construction options.
type Config struct {
	// StaticDir is the frontend build directory to serve; empty disables
	// static serving.
	StaticDir string
}

// NewServer creates the HTTP server around the given service.
func NewServer(svc *service.Service, cfg Config, logger *slog.Logger) *Server {
	s := &Server{
		svc:       svc,
		router:    chi.NewRouter(),
		logger:    logger,
		staticDir: cfg.StaticDir,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// Start runs the server until the listener fails.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting HTTP server", "addr", addr)

	server := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	return server.ListenAndServe()
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}

// opResult is the uniform shape every mutating endpoint returns.
type opResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, opResult{Success: false, Message: message})
}

// respondOpError maps the error taxonomy to status codes: validation
// rejections 400, subprocess timeouts 504, a missing external tool 500,
// and nonzero exits 400 with the captured output as the message.
func respondOpError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, exec.ErrNotFound):
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}
