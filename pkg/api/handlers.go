/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/defaults"
	cerrors "github.com/rikstoto-innsikt/couponcheck/pkg/errors"
	"github.com/rikstoto-innsikt/couponcheck/pkg/generator"
	"github.com/rikstoto-innsikt/couponcheck/pkg/serializer"
	"github.com/rikstoto-innsikt/couponcheck/pkg/server"
	"github.com/rikstoto-innsikt/couponcheck/pkg/validator"
)

// Handler serves the coupon validation API.
type Handler struct {
	validator    *validator.Validator
	maxBodyBytes int64
}

// NewHandler returns a Handler validating with v.
func NewHandler(v *validator.Validator) *Handler {
	return &Handler{
		validator:    v,
		maxBodyBytes: defaults.MaxRequestBodyBytes,
	}
}

// HandleValidate handles POST /v1/validate. The body is a coupon record in
// JSON or YAML. The response is always the analysis result, including for
// unparsable records; ?format=text|yaml|json selects the rendering.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cerrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	out, err := responseFormat(r, serializer.FormatJSON, serializer.FormatYAML, serializer.FormatText)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid format", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ValidateHandlerTimeout)
	defer cancel()

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			server.WriteError(w, r, http.StatusBadRequest, cerrors.ErrCodeInvalidRequest,
				"request body too large", false, map[string]any{"limit": mbe.Limit})
			return
		}
		server.WriteErrorFromErr(w, r, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "failed to read request body", err),
			"failed to read request body", nil)
		return
	}

	result, err := h.validator.ValidateBytes(ctx, data, requestFormat(r, data))
	if err != nil {
		code := cerrors.ErrCodeInternal
		if errors.Is(err, context.DeadlineExceeded) {
			code = cerrors.ErrCodeTimeout
		}
		server.WriteErrorFromErr(w, r, cerrors.Wrap(code, "validation failed", err), "validation failed", nil)
		return
	}

	slog.Debug("validated coupon",
		"status", statusOf(result.IsFatal(), string(result.Summary.OverallStatus)),
		"errors", result.Summary.TotalErrors,
		"warnings", result.Summary.TotalWarnings,
		"requestId", server.RequestIDFromContext(r.Context()))

	serializer.Respond(w, http.StatusOK, out, result)
}

// HandleGenerate handles GET /v1/generate and returns a synthetic record.
// Query parameters: product, seed, starters, correct, rows, format.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, cerrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	out, err := responseFormat(r, serializer.FormatJSON, serializer.FormatYAML)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid format", nil)
		return
	}

	opts, seeded, err := generatorOptions(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid query", nil)
		return
	}

	rec, err := generator.New(opts...).Generate()
	if err != nil {
		server.WriteErrorFromErr(w, r, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid generator options", err),
			"invalid generator options", nil)
		return
	}

	if seeded {
		w.Header().Set("Cache-Control", "public, max-age=300")
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	serializer.Respond(w, http.StatusOK, out, rec)
}

func generatorOptions(r *http.Request) ([]generator.Option, bool, error) {
	q := r.URL.Query()
	var opts []generator.Option

	if s := q.Get("product"); s != "" {
		p, ok := coupon.ParseProduct(s)
		if !ok {
			details := map[string]any{"product": s, "supported": coupon.SupportedProducts()}
			if suggestion, found := coupon.SuggestProduct(s); found {
				details["suggestion"] = suggestion.String()
			}
			return nil, false, cerrors.WrapWithContext(cerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("unsupported product %q", s), nil, details)
		}
		opts = append(opts, generator.WithProduct(p))
	}

	seeded := false
	if s := q.Get("seed"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, false, invalidParam("seed", s, err)
		}
		opts = append(opts, generator.WithSeed(seed))
		seeded = true
	}

	ints := []struct {
		param string
		apply func(int) generator.Option
	}{
		{"starters", generator.WithStarters},
		{"correct", generator.WithCorrectRaces},
		{"rows", generator.WithRows},
	}
	for _, p := range ints {
		s := q.Get(p.param)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, false, invalidParam(p.param, s, err)
		}
		opts = append(opts, p.apply(n))
	}

	return opts, seeded, nil
}

func invalidParam(param, value string, err error) error {
	return cerrors.WrapWithContext(cerrors.ErrCodeInvalidRequest,
		fmt.Sprintf("invalid %s parameter", param), err, map[string]any{param: value})
}

// responseFormat reads ?format= and checks it against the allowed formats.
func responseFormat(r *http.Request, allowed ...serializer.Format) (serializer.Format, error) {
	s := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if s == "" {
		return allowed[0], nil
	}
	for _, f := range allowed {
		if string(f) == s {
			return f, nil
		}
	}
	names := make([]string, len(allowed))
	for i, f := range allowed {
		names[i] = string(f)
	}
	return "", cerrors.WrapWithContext(cerrors.ErrCodeInvalidRequest,
		fmt.Sprintf("unsupported format %q", s), nil, map[string]any{"supported": names})
}

// requestFormat picks the body format from Content-Type, sniffing the body
// when the type is missing or generic.
func requestFormat(r *http.Request, data []byte) serializer.Format {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil {
		switch mediaType {
		case "application/json":
			return serializer.FormatJSON
		case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
			return serializer.FormatYAML
		}
	}
	return serializer.DetectFormat(data)
}

func statusOf(fatal bool, status string) string {
	if fatal {
		return "FATAL"
	}
	return status
}
