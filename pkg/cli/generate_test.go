/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
)

func TestGenerate_DeterministicForSeed(t *testing.T) {
	first, err := runCmd(t, "generate", "--product", "v75", "--seed", "99")
	require.NoError(t, err)
	second, err := runCmd(t, "generate", "--product", "V75", "--seed", "99")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var rec coupon.Record
	require.NoError(t, json.Unmarshal([]byte(first), &rec))
	assert.Equal(t, coupon.ProductV75, rec.Product)
	assert.Len(t, rec.RaceResults, 7)
}

func TestGenerate_Options(t *testing.T) {
	out, err := runCmd(t, "gen", "-p", "V4", "--seed", "3", "--starters", "9", "--correct", "2", "--rows", "12", "--format", "yaml")
	require.NoError(t, err)

	var rec coupon.Record
	require.NoError(t, yaml.Unmarshal([]byte(out), &rec))
	assert.Equal(t, coupon.ProductV4, rec.Product)
	require.NotNil(t, rec.Result)
	assert.Equal(t, 2, rec.Result.CorrectRaces)
	require.NotNil(t, rec.BetDetails)
	assert.Equal(t, 12, rec.BetDetails.Rows)
	for _, race := range rec.RaceResults {
		assert.Equal(t, 9, race.TotalStarters)
	}
}

func TestGenerate_ThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v65.json")
	_, err := runCmd(t, "generate", "--product", "V65", "--seed", "17", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	out, err := runCmd(t, "validate", "--fail-on-error", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OVERALL STATUS: EXCELLENT")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"unknown product with suggestion", []string{"generate", "--product", "V76"}, "did you mean V75"},
		{"unknown product", []string{"generate", "--product", "trifecta"}, "supported values"},
		{"table format", []string{"generate", "--format", "table"}, "unknown output format"},
		{"starters out of range", []string{"generate", "--starters", "30"}, "starters must be between"},
		{"too many correct", []string{"generate", "--product", "DD", "--correct", "3"}, "correct races must be at most"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
