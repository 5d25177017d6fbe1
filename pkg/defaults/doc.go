/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package defaults provides centralized timeout and size constants.
//
// # Categories
//
//   - Handler timeouts: for HTTP request processing
//   - Server timeouts: for HTTP server configuration
//   - Kubernetes timeouts: for ConfigMap reads and writes
//   - HTTP client timeouts: for fetching records from URLs
//   - Watch settings: for the directory watcher
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.K8sAPITimeout)
//	defer cancel()
package defaults
