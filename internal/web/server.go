// Package web implements the HTTP API for registering and matching faces.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kozaktomas/face-vault/internal/database"
	"github.com/kozaktomas/face-vault/internal/embedder"
	"github.com/kozaktomas/face-vault/internal/pipeline"
	"github.com/kozaktomas/face-vault/internal/storage"
	"github.com/kozaktomas/face-vault/internal/web/middleware"
)

// Server represents the web server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server

	store    database.FaceWriter
	storage  storage.BlobStorage
	embedder embedder.Embedder
	pipeline *pipeline.Pipeline
}

// NewServer creates a new web server. All backends are constructed once at
// startup and passed in; handlers share them by reference.
func NewServer(host string, port int, store database.FaceWriter, blobs storage.BlobStorage, emb embedder.Embedder) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:   r,
		store:    store,
		storage:  blobs,
		embedder: emb,
		pipeline: pipeline.New(store, blobs, emb, 0),
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(5 * time.Minute))
	r.Use(middleware.CORS())

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  5 * time.Minute, // bulk uploads can be large
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
