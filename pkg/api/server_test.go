/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/generator"
	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
	"github.com/rikstoto-innsikt/couponcheck/pkg/server"
	"github.com/rikstoto-innsikt/couponcheck/pkg/validator"
)

func newTestHandler() *Handler {
	return NewHandler(validator.New(validator.WithVersion("test")))
}

func generatedRecord(t *testing.T) []byte {
	t.Helper()
	rec, err := generator.New(generator.WithSeed(7), generator.WithProduct(coupon.ProductV75)).Generate()
	require.NoError(t, err)
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	return data
}

func postValidate(h *Handler, query, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/validate"+query, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.HandleValidate(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleValidate_ConsistentRecord(t *testing.T) {
	w := postValidate(newTestHandler(), "", "application/json", generatedRecord(t))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "V75", got["product"])
	assert.Equal(t, "CouponAnalysis", got["kind"])

	summary, ok := got["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(report.StatusExcellent), summary["overall_status"])
	assert.EqualValues(t, 0, summary["total_errors"])
}

func TestHandleValidate_YAMLBody(t *testing.T) {
	rec, err := generator.New(generator.WithSeed(3)).Generate()
	require.NoError(t, err)
	body, err := yaml.Marshal(rec)
	require.NoError(t, err)

	w := postValidate(newTestHandler(), "?format=yaml", "application/yaml; charset=utf-8", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "overall_status: EXCELLENT")
}

func TestHandleValidate_SniffsWithoutContentType(t *testing.T) {
	w := postValidate(newTestHandler(), "", "", generatedRecord(t))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"overall_status":"EXCELLENT"`)
}

func TestHandleValidate_TextFormat(t *testing.T) {
	w := postValidate(newTestHandler(), "?format=text", "application/json", generatedRecord(t))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, w.Body.String(), "V75 COUPON CONSISTENCY ANALYSIS REPORT")
	assert.Contains(t, w.Body.String(), "OVERALL STATUS: EXCELLENT")
}

func TestHandleValidate_InconsistentRecord(t *testing.T) {
	rec, err := generator.New(generator.WithSeed(11), generator.WithProduct(coupon.ProductV64)).Generate()
	require.NoError(t, err)
	rec.PoolInfo.TotalPool = 0
	body, err := json.Marshal(rec)
	require.NoError(t, err)

	w := postValidate(newTestHandler(), "", "application/json", body)

	require.Equal(t, http.StatusOK, w.Code)
	var result report.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, report.StatusFail, result.Summary.OverallStatus)
	assert.Contains(t, result.Errors, "Total pool must be positive")
}

func TestHandleValidate_UnparsableBody(t *testing.T) {
	w := postValidate(newTestHandler(), "", "application/json", []byte(`{"product": `))

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.NotEmpty(t, got["error"])
}

func TestHandleValidate_BodyTooLarge(t *testing.T) {
	h := newTestHandler()
	h.maxBodyBytes = 16

	w := postValidate(h, "", "application/json", generatedRecord(t))

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.Equal(t, "request body too large", resp.Message)
}

func TestHandleValidate_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/validate", nil)
	w := httptest.NewRecorder()
	newTestHandler().HandleValidate(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, w).Code)
}

func TestHandleValidate_UnknownFormat(t *testing.T) {
	w := postValidate(newTestHandler(), "?format=xml", "application/json", generatedRecord(t))

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.Contains(t, resp.Message, "xml")
}

func getGenerate(query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/generate"+query, nil)
	w := httptest.NewRecorder()
	newTestHandler().HandleGenerate(w, req)
	return w
}

func TestHandleGenerate(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		expectCode int
	}{
		{name: "defaults", query: "", expectCode: http.StatusOK},
		{name: "seeded product", query: "?product=v5&seed=42", expectCode: http.StatusOK},
		{name: "all options", query: "?product=DD&seed=1&starters=10&correct=2&rows=4", expectCode: http.StatusOK},
		{name: "yaml", query: "?seed=9&format=yaml", expectCode: http.StatusOK},
		{name: "unknown product", query: "?product=V86", expectCode: http.StatusBadRequest},
		{name: "bad seed", query: "?seed=-1", expectCode: http.StatusBadRequest},
		{name: "bad starters", query: "?starters=many", expectCode: http.StatusBadRequest},
		{name: "starters out of range", query: "?starters=2", expectCode: http.StatusBadRequest},
		{name: "correct out of range", query: "?product=V4&correct=5", expectCode: http.StatusBadRequest},
		{name: "table format rejected", query: "?format=table", expectCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getGenerate(tt.query)
			assert.Equal(t, tt.expectCode, w.Code, w.Body.String())
		})
	}
}

func TestHandleGenerate_Deterministic(t *testing.T) {
	first := getGenerate("?product=V65&seed=1234")
	second := getGenerate("?product=V65&seed=1234")

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "public, max-age=300", first.Header().Get("Cache-Control"))

	var rec coupon.Record
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &rec))
	assert.Equal(t, coupon.ProductV65, rec.Product)
	assert.Len(t, rec.RaceResults, 6)
}

func TestHandleGenerate_UnseededNotCached(t *testing.T) {
	w := getGenerate("")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestHandleGenerate_ProductSuggestion(t *testing.T) {
	w := getGenerate("?product=V76")

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "V75", resp.Details["suggestion"])
}

func TestHandleGenerate_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/generate", nil)
	w := httptest.NewRecorder()
	newTestHandler().HandleGenerate(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodGet, w.Header().Get("Allow"))
}

func TestRoutes_ThroughServer(t *testing.T) {
	s := server.New(
		server.WithName("couponcheck-api-test"),
		server.WithVersion("test"),
		server.WithHandler(newTestHandler().Routes()),
	)
	h := s.Handler()

	gen := httptest.NewRecorder()
	h.ServeHTTP(gen, httptest.NewRequest(http.MethodGet, "/v1/generate?seed=5&product=V4", nil))
	require.Equal(t, http.StatusOK, gen.Code)
	assert.NotEmpty(t, gen.Header().Get(server.HeaderRequestID))

	val := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(gen.Body.Bytes()))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(val, req)
	require.Equal(t, http.StatusOK, val.Code)

	var result report.Result
	require.NoError(t, json.Unmarshal(val.Body.Bytes(), &result))
	assert.Equal(t, report.StatusExcellent, result.Summary.OverallStatus)
	assert.Equal(t, "V4", result.Product)
}
