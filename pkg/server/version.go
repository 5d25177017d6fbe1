/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is served when the client does not ask for one.
	DefaultAPIVersion = "v1"

	// HeaderAPIVersion carries the negotiated version on responses.
	HeaderAPIVersion = "X-API-Version"

	vendorMediaPrefix = "application/vnd.couponcheck."
)

var supportedAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion reads the version from a vendor media type in the
// Accept header, e.g. application/vnd.couponcheck.v1+json. Missing or
// unsupported versions fall back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		rest, ok := strings.CutPrefix(strings.TrimSpace(mediaType), vendorMediaPrefix)
		if !ok {
			continue
		}
		version, _, _ := strings.Cut(rest, "+")
		if isValidAPIVersion(version) {
			return version
		}
	}
	return DefaultAPIVersion
}

func isValidAPIVersion(v string) bool {
	return supportedAPIVersions[v]
}
