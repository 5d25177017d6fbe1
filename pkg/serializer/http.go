/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"bytes"
	"log/slog"
	"net/http"
)

var contentTypes = map[Format]string{
	FormatJSON:  "application/json",
	FormatYAML:  "application/yaml",
	FormatTable: "text/plain; charset=utf-8",
	FormatText:  "text/plain; charset=utf-8",
}

// RespondJSON writes a JSON response with the given status code and data.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	Respond(w, statusCode, FormatJSON, data)
}

// Respond writes data in the given format with the matching Content-Type.
// It buffers the encoding before writing headers to prevent partial responses.
func Respond(w http.ResponseWriter, statusCode int, format Format, data any) {
	if format.IsUnknown() {
		format = FormatJSON
	}

	buf := &bytes.Buffer{}
	if err := encode(buf, format, data); err != nil {
		slog.Error("response encoding failed", "format", format, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}
