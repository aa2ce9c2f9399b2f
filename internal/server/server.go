// Package server exposes comparison and join-path queries over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqljudge/internal/relgraph"
	"github.com/leapstack-labs/sqljudge/internal/schema"
)

// Config holds configuration for the API server.
type Config struct {
	Port     int
	Snapshot *schema.Snapshot
	Graph    *relgraph.Graph
	Logger   *slog.Logger
}

// Server is the HTTP API server. The schema snapshot and relationship
// graph are optional; path queries fail cleanly when they are absent.
type Server struct {
	port     int
	snapshot *schema.Snapshot
	graph    *relgraph.Graph
	logger   *slog.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		port:     cfg.Port,
		snapshot: cfg.Snapshot,
		graph:    cfg.Graph,
		logger:   logger,
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/compare", s.handleCompare)
		r.Post("/paths", s.handlePaths)
		r.Get("/schema", s.handleSchema)
	})

	return r
}

// Serve starts the API server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting api server", slog.String("addr", addr))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down api server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
