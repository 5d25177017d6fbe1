/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/rikstoto-innsikt/couponcheck/pkg/defaults"
	"github.com/rikstoto-innsikt/couponcheck/pkg/logging"
	"github.com/rikstoto-innsikt/couponcheck/pkg/server"
	"github.com/rikstoto-innsikt/couponcheck/pkg/validator"
)

const (
	name           = "couponcheck-api"
	versionDefault = "dev"

	// EnvTolerances names a tolerance document (file, URL or cm:// URI)
	// loaded at startup.
	EnvTolerances = "COUPONCHECK_TOLERANCES"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/rikstoto-innsikt/couponcheck/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	tol := validator.DefaultTolerances()
	if uri := os.Getenv(EnvTolerances); uri != "" {
		var err error
		if tol, err = validator.LoadTolerances(ctx, uri, ""); err != nil {
			slog.Error("failed to load tolerances", "uri", uri, "error", err)
			return err
		}
		slog.Info("using custom tolerances", "uri", uri)
	}

	h := NewHandler(validator.New(
		validator.WithVersion(version),
		validator.WithTolerances(tol),
	))

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// Routes returns the API handlers keyed by path.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	generate := http.TimeoutHandler(http.HandlerFunc(h.HandleGenerate),
		defaults.GenerateHandlerTimeout, "generation timed out")

	return map[string]http.HandlerFunc{
		"/v1/validate": h.HandleValidate,
		"/v1/generate": generate.ServeHTTP,
	}
}
