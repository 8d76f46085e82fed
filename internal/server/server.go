// Package server exposes the routing pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz    liveness and build version
//	POST /v1/route   run the pipeline on a diagram and return the routed
//	                 document with the requested artifacts
//	GET  /v1/diagrams/{path}
//	                 render a diagram file below the configured directory,
//	                 e.g. /v1/diagrams/deck/arch.toml?format=svg&step=2
//
// The request body of /v1/route is a [pipeline.Options] JSON object:
//
//	{"source": "[[component]]\nid = \"api\"\n", "formats": ["svg"]}
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/deckroute/pkg/pipeline"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// maxBodyBytes bounds the size of a request body.
const maxBodyBytes = 1 << 20

const shutdownTimeout = 5 * time.Second

// Config holds configuration for the server.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Logger *log.Logger

	// DiagramDir is the directory served by /v1/diagrams. Empty disables
	// the route.
	DiagramDir string
}

// Server serves the routing API.
type Server struct {
	addr   string
	dir    string
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server. A nil runner gets an uncached one.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	return &Server{addr: cfg.Addr, dir: cfg.DiagramDir, runner: cfg.Runner, logger: cfg.Logger}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		observe,
		middleware.RequestID,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/route", s.handleRoute)
		r.Get("/diagrams/*", s.handleDiagram)
	})
	return r
}

// Serve listens on the configured address and blocks until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting server", "addr", "http://"+s.addr)

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
