// Package server exposes the treemap pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz                 liveness probe
//	GET    /metrics                 Prometheus metrics
//	POST   /v1/layouts              lay out a hierarchy and store the result
//	GET    /v1/layouts/{id}         fetch a stored layout
//	GET    /v1/layouts/{id}/svg     render a stored layout as SVG
//	DELETE /v1/layouts/{id}         remove a stored layout
//	POST   /v1/render?format=svg    lay out and render in one call
//
// Layout options are taken from query parameters on top of the configured
// defaults. The hierarchy is the request body, JSON or YAML.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/bubbletreemap/pkg/pipeline"
	"github.com/matzehuels/bubbletreemap/pkg/storage"
)

// Defaults for Config fields left zero.
const (
	DefaultAddr         = ":8080"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 10 << 20
)

// Config configures a Server.
type Config struct {
	Addr         string
	Timeout      time.Duration
	MaxBodyBytes int64

	// Defaults are the pipeline options every request starts from.
	Defaults pipeline.Options

	// Gatherer backs /metrics. Nil uses the default Prometheus registry.
	Gatherer prometheus.Gatherer
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
}

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	store  storage.Store
	logger *log.Logger
	cfg    Config
}

// New creates and configures the HTTP server. A nil logger discards output.
func New(runner *pipeline.Runner, store storage.Store, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	cfg.setDefaults()
	s := &Server{
		runner: runner,
		store:  store,
		logger: logger,
		cfg:    cfg,
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
	r.Use(RequestID)
	r.Use(RequestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.Timeout))
		r.Use(limitBody(s.cfg.MaxBodyBytes))

		r.Post("/layouts", s.handleCreateLayout)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Get("/layouts/{id}/svg", s.handleLayoutSVG)
		r.Delete("/layouts/{id}", s.handleDeleteLayout)
		r.Post("/render", s.handleRender)
	})

	s.router = r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
