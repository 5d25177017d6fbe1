/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"coupon.yaml", FormatYAML},
		{"coupon.YML", FormatYAML},
		{"coupon.json", FormatJSON},
		{"coupon", FormatJSON},
		{"cm://ns/name", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat([]byte("  \n{\"a\":1}")))
	assert.Equal(t, FormatJSON, DetectFormat([]byte("[1,2]")))
	assert.Equal(t, FormatYAML, DetectFormat([]byte("a: 1\n")))
	assert.Equal(t, FormatYAML, DetectFormat(nil))
}

func TestDecode(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Decode([]byte("name: a\nvalue: 2\n"), FormatYAML, &cfg))
	assert.Equal(t, testConfig{Name: "a", Value: 2}, cfg)

	err := Decode([]byte("{"), FormatJSON, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")

	err = Decode([]byte("a: [1"), FormatYAML, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestReadSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-file\nvalue: 9\n"), 0o600))

	src, err := ReadSource(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, src.Format)
	assert.Equal(t, path, src.URI)

	var cfg testConfig
	require.NoError(t, Decode(src.Data, src.Format, &cfg))
	assert.Equal(t, "from-file", cfg.Name)
}

func TestReadSource_MissingFile(t *testing.T) {
	_, err := ReadSource(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestReadSource_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"name":"remote","value":1}`))
	}))
	defer srv.Close()

	src, err := ReadSource(context.Background(), srv.URL+"/coupon", "")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, src.Format)
	assert.Contains(t, string(src.Data), "remote")

	_, err = ReadSource(context.Background(), srv.URL+"/missing", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}
