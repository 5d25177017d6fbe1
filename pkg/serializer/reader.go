/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/rikstoto-innsikt/couponcheck/pkg/defaults"
	"github.com/rikstoto-innsikt/couponcheck/pkg/k8s/client"
)

// Source is raw document content together with its detected format.
type Source struct {
	URI    string
	Data   []byte
	Format Format
}

// ReadSource reads a document from a file path, "-" (stdin), an HTTP(S) URL,
// or a ConfigMap URI (cm://namespace/name). kubeconfig is only used for
// ConfigMap URIs; empty means automatic discovery.
func ReadSource(ctx context.Context, uri, kubeconfig string) (*Source, error) {
	uri = strings.TrimSpace(uri)

	switch {
	case uri == "" || uri == StdoutURI:
		data, err := readLimited(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return &Source{URI: StdoutURI, Data: data, Format: DetectFormat(data)}, nil

	case strings.HasPrefix(uri, ConfigMapURIScheme):
		namespace, name, err := ParseConfigMapURI(uri)
		if err != nil {
			return nil, err
		}
		cs, err := client.ClientFor(kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
		}
		data, key, err := ReadConfigMap(ctx, cs, namespace, name)
		if err != nil {
			return nil, err
		}
		format := FormatFromPath(key)
		if !strings.Contains(key, ".") {
			format = DetectFormat(data)
		}
		return &Source{URI: uri, Data: data, Format: format}, nil

	case strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://"):
		data, err := fetchHTTP(ctx, uri)
		if err != nil {
			return nil, err
		}
		return &Source{URI: uri, Data: data, Format: DetectFormat(data)}, nil

	default:
		f, err := os.Open(uri)
		if err != nil {
			return nil, fmt.Errorf("failed to open %q: %w", uri, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				slog.Warn("failed to close input file", "path", uri, "error", cerr)
			}
		}()
		data, err := readLimited(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", uri, err)
		}
		return &Source{URI: uri, Data: data, Format: FormatFromPath(uri)}, nil
	}
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSourceBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxSourceBytes {
		return nil, fmt.Errorf("input exceeds %d bytes", maxSourceBytes)
	}
	return data, nil
}

func fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.HTTPClientTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("failed to close response body", "url", url, "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %q: unexpected status %d", url, resp.StatusCode)
	}

	data, err := readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", url, err)
	}
	return data, nil
}
