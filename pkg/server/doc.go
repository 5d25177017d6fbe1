/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package server provides the HTTP server shared by couponcheck services.
//
// A Server mounts caller-supplied handlers under a chi router together with
// the system endpoints:
//
//	GET /         service name, version and routes
//	GET /health   liveness
//	GET /ready    readiness, 503 until the listener is up
//	GET /metrics  Prometheus metrics
//
// Every request gets an X-Request-Id (taken from the request when present),
// panic recovery, request metrics and CORS headers. Caller handlers are
// additionally rate limited and carry the negotiated X-API-Version header.
//
// Errors are written as ErrorResponse JSON documents; WriteErrorFromErr maps
// pkg/errors codes to HTTP status codes.
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives and
// then shuts down gracefully.
package server
