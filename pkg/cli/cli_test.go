/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/generator"
)

// runCmd runs the root command with args and returns what it wrote to stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &out
	cmd.ErrWriter = io.Discard
	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

// writeRecord generates a record and writes it as JSON into dir.
func writeRecord(t *testing.T, dir, file string, opts ...generator.Option) string {
	t.Helper()
	rec, err := generator.New(opts...).Generate()
	require.NoError(t, err)
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	path := filepath.Join(dir, file)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func seeded(seed uint64, product coupon.Product) []generator.Option {
	return []generator.Option{generator.WithSeed(seed), generator.WithProduct(product)}
}
