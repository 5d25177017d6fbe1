/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Server serves the system endpoints plus the registered handlers.
type Server struct {
	name     string
	version  string
	config   *Config
	handlers map[string]http.HandlerFunc
	limiter  *rate.Limiter

	mu         sync.RWMutex
	ready      bool
	httpServer *http.Server
}

// Option is a functional option for configuring Server instances.
type Option func(*Server)

// WithName returns an Option that sets the service name.
func WithName(name string) Option {
	return func(s *Server) {
		s.name = name
	}
}

// WithVersion returns an Option that sets the service version.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithHandler returns an Option that registers handlers keyed by path.
// Handlers are responsible for their own method checks.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		for path, h := range handlers {
			s.handlers[path] = h
		}
	}
}

// WithConfig returns an Option that replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// New creates a new Server with the provided options.
func New(opts ...Option) *Server {
	s := &Server{
		name:     "couponcheck",
		version:  "dev",
		config:   DefaultConfig(),
		handlers: make(map[string]http.HandlerFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)
	return s
}

// SetReady marks the server ready or not ready.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady reports whether the server accepts traffic.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// Run listens on the configured address and blocks until ctx is done or the
// process receives SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening", "name", s.name, "addr", ln.Addr().String())
		s.SetReady(true)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.SetReady(false)
		slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	slog.Info("server stopped", "name", s.name)
	return err
}

// routes lists the registered routes for the default handler.
func (s *Server) routes() []string {
	paths := make([]string, 0, len(s.handlers))
	for p := range s.handlers {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return append(paths, "GET /health", "GET /ready", "GET /metrics")
}
