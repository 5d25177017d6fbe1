/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	cerrors "github.com/rikstoto-innsikt/couponcheck/pkg/errors"
	"github.com/rikstoto-innsikt/couponcheck/pkg/serializer"
)

// ErrorResponse represents error responses
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// WriteError writes an ErrorResponse with the given status code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code cerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes err as an ErrorResponse. Structured errors keep
// their code, message and context; anything else becomes an internal error
// with fallbackMessage. The cause, when present, is reported as
// details["error"].
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	var se *cerrors.StructuredError
	if errors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), details)
		return
	}

	details := extraDetails
	if err != nil {
		details = mergeDetails(extraDetails, map[string]any{"error": err.Error()})
	}
	WriteError(w, r, http.StatusInternalServerError, cerrors.ErrCodeInternal, fallbackMessage, true, details)
}

// HTTPStatusFromCode maps an error code to an HTTP status code.
func HTTPStatusFromCode(code cerrors.ErrorCode) int {
	switch code {
	case cerrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case cerrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case cerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case cerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case cerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case cerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case cerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code cerrors.ErrorCode) bool {
	switch code {
	case cerrors.ErrCodeTimeout, cerrors.ErrCodeUnavailable,
		cerrors.ErrCodeRateLimitExceeded, cerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
