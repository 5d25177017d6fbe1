/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTolerances_Valid(t *testing.T) {
	require.NoError(t, DefaultTolerances().Validate())
}

func TestTolerances_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tolerances)
	}{
		{"take rate zero", func(t *Tolerances) { t.TakeRate = 0 }},
		{"max below min odds", func(t *Tolerances) { t.MaxOdds = 1 }},
		{"two tier shares", func(t *Tolerances) { t.TierShares = t.TierShares[:2] }},
		{"share above 100", func(t *Tolerances) { t.TierShares[0].Target = 120 }},
		{"negative slack", func(t *Tolerances) { t.PayoutEpsilon = -1 }},
		{"favorite number zero", func(t *Tolerances) { t.FavoriteMaxNumber = 0 }},
		{"max starters zero", func(t *Tolerances) { t.MaxStarters = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tol := DefaultTolerances()
			tt.mutate(&tol)
			err := tol.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid tolerances")
		})
	}
}

func TestLoadTolerances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tolerances.yaml")
	require.NoError(t, os.WriteFile(path, []byte("percentageSumTolerance: 5\nmaxOdds: 250\n"), 0o600))

	tol, err := LoadTolerances(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, 5.0, tol.PercentageSumTolerance)
	assert.Equal(t, 250.0, tol.MaxOdds)
	assert.Equal(t, DefaultTolerances().TakeRate, tol.TakeRate)
	assert.Len(t, tol.TierShares, 3)
}

func TestLoadTolerances_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTolerances(context.Background(), filepath.Join(dir, "missing.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read tolerances")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"takeRate": "high"}`), 0o600))
	_, err = LoadTolerances(context.Background(), bad, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse tolerances")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("takeRate: 2\n"), 0o600))
	_, err = LoadTolerances(context.Background(), invalid, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tolerances")
}

func TestTighterTolerancesChangeFindings(t *testing.T) {
	tol := DefaultTolerances()
	tol.PercentageSumTolerance = 5

	rec := consistentRecord()
	rec.RaceResults[0].Results[0].PercentageBet = 18

	assert.Empty(t, byCode(checkArithmetic(rec, DefaultTolerances()), "percentage-sum"))
	assert.Len(t, byCode(checkArithmetic(rec, tol), "percentage-sum"), 1)
}
