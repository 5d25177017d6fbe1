/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package coupon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rikstoto-innsikt/couponcheck/pkg/serializer"
)

// Load parses a record from raw document bytes in the given format.
// The set of top-level keys is remembered so structural checks can tell a
// missing field from a zero value.
func Load(data []byte, format serializer.Format) (*Record, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("record is empty")
	}

	var top map[string]any
	if err := serializer.Decode(data, format, &top); err != nil {
		return nil, err
	}
	if top == nil {
		return nil, fmt.Errorf("record must be an object")
	}

	var rec Record
	if err := serializer.Decode(data, format, &rec); err != nil {
		return nil, err
	}

	// An empty statistics object carries nothing to check.
	if st, ok := top[FieldStatistics].(map[string]any); ok && len(st) == 0 {
		rec.Statistics = nil
	}

	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	rec.SetFields(keys)

	return &rec, nil
}

// FromFile loads a record from a local file path.
func FromFile(path string) (*Record, error) {
	return FromURI(context.Background(), path, "")
}

// FromURI loads a record from a file path, "-" (stdin), an HTTP(S) URL or a
// ConfigMap URI (cm://namespace/name).
func FromURI(ctx context.Context, uri, kubeconfig string) (*Record, error) {
	src, err := serializer.ReadSource(ctx, uri, kubeconfig)
	if err != nil {
		return nil, err
	}

	slog.Debug("determined record format",
		slog.String("uri", src.URI),
		slog.String("format", string(src.Format)),
	)

	rec, err := Load(src.Data, src.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record from %q: %w", uri, err)
	}

	slog.Debug("loaded record",
		slog.String("uri", src.URI),
		slog.String("product", string(rec.Product)),
		slog.Int("races", len(rec.RaceResults)),
	)

	return rec, nil
}
