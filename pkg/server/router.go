/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cerrors "github.com/rikstoto-innsikt/couponcheck/pkg/errors"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID, HeaderAPIVersion},
		MaxAge:         s.config.CORSMaxAge,
	}))

	// System endpoints (no rate limiting)
	r.Get("/", s.handleDefault)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	// API endpoints with middleware
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimitMiddleware)
		r.Use(s.versionMiddleware)
		for path, h := range s.handlers {
			r.Handle(path, h)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, cerrors.ErrCodeNotFound, "route not found", false,
			map[string]any{"path": r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, cerrors.ErrCodeMethodNotAllowed, "method not allowed", false,
			map[string]any{"method": r.Method})
	})

	return r
}
