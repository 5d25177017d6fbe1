/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, RequestIDFromContext(r.Context()))
}

func newTestServer(opts ...Option) *Server {
	base := []Option{
		WithName("couponcheck-test"),
		WithVersion("v0.0.1"),
		WithHandler(map[string]http.HandlerFunc{
			"/v1/echo":  echoHandler,
			"/v1/panic": func(http.ResponseWriter, *http.Request) { panic("kaboom") },
		}),
	}
	return New(append(base, opts...)...)
}

func do(t *testing.T, h http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer().Handler(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestReady(t *testing.T) {
	s := newTestServer()
	h := s.Handler()

	w := do(t, h, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.NotEmpty(t, resp.Reason)

	s.SetReady(true)
	w = do(t, h, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDefaultRoute(t *testing.T) {
	w := do(t, newTestServer().Handler(), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Name    string   `json:"name"`
		Version string   `json:"version"`
		Routes  []string `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "couponcheck-test", resp.Name)
	assert.Equal(t, "v0.0.1", resp.Version)
	assert.Equal(t, []string{"/v1/echo", "/v1/panic", "GET /health", "GET /ready", "GET /metrics"}, resp.Routes)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestServer().Handler()

	w := do(t, h, http.MethodGet, "/v1/nothing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, w).Code)

	w = do(t, h, http.MethodDelete, "/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, w).Code)
}

func TestRequestID(t *testing.T) {
	h := newTestServer().Handler()

	w := do(t, h, http.MethodGet, "/v1/echo", nil)
	id := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	given := uuid.New().String()
	w = do(t, h, http.MethodGet, "/v1/echo", map[string]string{HeaderRequestID: given})
	assert.Equal(t, given, w.Header().Get(HeaderRequestID))
	assert.Equal(t, given, w.Body.String())

	w = do(t, h, http.MethodGet, "/v1/echo", map[string]string{HeaderRequestID: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(HeaderRequestID))
}

func TestPanicRecovered(t *testing.T) {
	w := do(t, newTestServer().Handler(), http.MethodGet, "/v1/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
	assert.Equal(t, w.Header().Get(HeaderRequestID), resp.RequestID)
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 0.001
	cfg.RateLimitBurst = 1
	h := newTestServer(WithConfig(cfg)).Handler()

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/echo", nil).Code)

	w := do(t, h, http.MethodGet, "/v1/echo", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	resp := decodeError(t, w)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", resp.Code)
	assert.True(t, resp.Retryable)

	// system endpoints are not limited
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", nil).Code)
}

func TestAPIVersionHeader(t *testing.T) {
	h := newTestServer().Handler()
	w := do(t, h, http.MethodGet, "/v1/echo", map[string]string{"Accept": "application/vnd.couponcheck.v1+json"})
	assert.Equal(t, "v1", w.Header().Get(HeaderAPIVersion))

	w = do(t, h, http.MethodGet, "/health", nil)
	assert.Empty(t, w.Header().Get(HeaderAPIVersion))
}

func TestCORS(t *testing.T) {
	h := newTestServer().Handler()
	w := do(t, h, http.MethodGet, "/v1/echo", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer().Handler()
	do(t, h, http.MethodGet, "/health", nil)

	w := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "couponcheck_http_requests_total")
	assert.Contains(t, string(body), `route="/health"`)
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/ready"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.False(t, s.IsReady())
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := DefaultConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = ln.Addr().(*net.TCPAddr).Port

	err = New(WithConfig(cfg)).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestDefaultConfig_Env(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := DefaultConfig()
	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, ":9191", cfg.Addr())
}

func TestDefaultConfig_BadPortIgnored(t *testing.T) {
	t.Setenv("PORT", "abc")
	assert.Equal(t, 8080, DefaultConfig().Port)
}
