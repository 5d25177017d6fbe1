/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import "time"

// Handler timeouts
const (
	// ValidateHandlerTimeout bounds a single /v1/validate request.
	ValidateHandlerTimeout = 15 * time.Second

	// GenerateHandlerTimeout bounds a single /v1/generate request.
	GenerateHandlerTimeout = 10 * time.Second

	// MaxRequestBodyBytes bounds uploaded record size.
	MaxRequestBodyBytes = 4 << 20
)

// Server timeouts
const (
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Kubernetes and outbound HTTP timeouts
const (
	// K8sAPITimeout bounds a single ConfigMap read or write.
	K8sAPITimeout = 30 * time.Second

	// HTTPClientTimeout bounds fetching a record from an HTTP(S) URL.
	HTTPClientTimeout = 30 * time.Second
)

// Watch settings
const (
	// WatchDebounce is how long the watcher waits for writes to settle
	// before validating a changed file.
	WatchDebounce = 250 * time.Millisecond
)
