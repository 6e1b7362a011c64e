// ABOUTME: HTTP server wiring the retrieval pipeline behind a chi router
// ABOUTME: JSON query endpoint, SSE streaming endpoint, and health check
package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dsamentor/dsa-mentor/internal/models"
)

// Answerer runs one query through the retrieval pipeline.
type Answerer interface {
	Answer(ctx context.Context, rawQuery string) (*models.Response, error)
}

// Server exposes the retrieval pipeline over HTTP.
type Server struct {
	pipeline Answerer
	addr     string
}

// New creates a Server listening on addr.
func New(pipeline Answerer, addr string) *Server {
	return &Server{pipeline: pipeline, addr: addr}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Post("/query", s.handleQuery)
		r.Post("/query/stream", s.handleQueryStream)
	})
	return r
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("[Server] listening on %s", s.addr)
	return srv.ListenAndServe()
}
