/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"fmt"
	"log/slog"

	govalidator "github.com/go-playground/validator/v10"

	"github.com/rikstoto-innsikt/couponcheck/pkg/serializer"
)

// floatSlack absorbs binary rounding when comparing against a tolerance.
const floatSlack = 1e-9

// TierShare is the expected share of total prize money for one tier, in
// percent, with the allowed deviation.
type TierShare struct {
	Target float64 `json:"target" yaml:"target" validate:"gte=0,lte=100"`
	Band   float64 `json:"band" yaml:"band" validate:"gte=0,lte=100"`
}

// Tolerances holds every numeric threshold used by the checks.
type Tolerances struct {
	// RacePoolLowRatio warns when race pools sum below this share of the total pool.
	RacePoolLowRatio float64 `json:"racePoolLowRatio" yaml:"racePoolLowRatio" validate:"gte=0,lte=1"`
	// RaceAmountTolerance is the allowed relative difference between a race
	// pool and the sum of its per-horse amounts.
	RaceAmountTolerance float64 `json:"raceAmountTolerance" yaml:"raceAmountTolerance" validate:"gte=0,lte=1"`
	// PercentageSumTolerance is the allowed distance, in percentage points,
	// of a race's percentage sum from 100.
	PercentageSumTolerance float64 `json:"percentageSumTolerance" yaml:"percentageSumTolerance" validate:"gte=0,lte=100"`
	// ImpliedProbabilityDrift is the allowed relative difference between
	// percentageBet and the probability implied by the odds.
	ImpliedProbabilityDrift float64 `json:"impliedProbabilityDrift" yaml:"impliedProbabilityDrift" validate:"gte=0"`

	TakeRate        float64     `json:"takeRate" yaml:"takeRate" validate:"gt=0,lte=1"`
	PrizeOverRatio  float64     `json:"prizeOverRatio" yaml:"prizeOverRatio" validate:"gtfield=PrizeUnderRatio"`
	PrizeUnderRatio float64     `json:"prizeUnderRatio" yaml:"prizeUnderRatio" validate:"gte=0"`
	TierShares      []TierShare `json:"tierShares" yaml:"tierShares" validate:"len=3,dive"`

	// MaxStarters bounds totalStarters; larger declarations are reported
	// instead of enumerated.
	MaxStarters int `json:"maxStarters" yaml:"maxStarters" validate:"gte=1"`

	WinnerOddsTolerance  float64 `json:"winnerOddsTolerance" yaml:"winnerOddsTolerance" validate:"gte=0"`
	AverageOddsTolerance float64 `json:"averageOddsTolerance" yaml:"averageOddsTolerance" validate:"gte=0"`
	FavoriteMaxNumber    int     `json:"favoriteMaxNumber" yaml:"favoriteMaxNumber" validate:"gte=1"`

	MinOdds float64 `json:"minOdds" yaml:"minOdds" validate:"gte=1"`
	MaxOdds float64 `json:"maxOdds" yaml:"maxOdds" validate:"gtfield=MinOdds"`

	CoverageMin       float64 `json:"coverageMin" yaml:"coverageMin" validate:"gte=0"`
	CoverageMax       float64 `json:"coverageMax" yaml:"coverageMax" validate:"gtfield=CoverageMin"`
	AverageBetSizeMin float64 `json:"averageBetSizeMin" yaml:"averageBetSizeMin" validate:"gte=0"`
	AverageBetSizeMax float64 `json:"averageBetSizeMax" yaml:"averageBetSizeMax" validate:"gtfield=AverageBetSizeMin"`

	// PayoutEpsilon is the largest payout difference treated as equal.
	PayoutEpsilon float64 `json:"payoutEpsilon" yaml:"payoutEpsilon" validate:"gte=0"`
}

// DefaultTolerances returns the thresholds used when none are configured.
func DefaultTolerances() Tolerances {
	return Tolerances{
		RacePoolLowRatio:        0.30,
		RaceAmountTolerance:     0.10,
		PercentageSumTolerance:  10,
		ImpliedProbabilityDrift: 0.5,
		TakeRate:                0.65,
		PrizeOverRatio:          1.10,
		PrizeUnderRatio:         0.5,
		TierShares: []TierShare{
			{Target: 50, Band: 20},
			{Target: 30, Band: 15},
			{Target: 20, Band: 15},
		},
		MaxStarters:          20,
		WinnerOddsTolerance:  0.1,
		AverageOddsTolerance: 0.1,
		FavoriteMaxNumber:    3,
		MinOdds:              1.1,
		MaxOdds:              500,
		CoverageMin:          0.1,
		CoverageMax:          10,
		AverageBetSizeMin:    10,
		AverageBetSizeMax:    10000,
		PayoutEpsilon:        0.005,
	}
}

var structValidator = govalidator.New(govalidator.WithRequiredStructEnabled())

// Validate checks that the tolerances are usable.
func (t Tolerances) Validate() error {
	if err := structValidator.Struct(t); err != nil {
		return fmt.Errorf("invalid tolerances: %w", err)
	}
	return nil
}

// LoadTolerances reads tolerances from a file, URL or ConfigMap URI. Fields
// absent from the document keep their default values.
func LoadTolerances(ctx context.Context, uri, kubeconfig string) (Tolerances, error) {
	t := DefaultTolerances()

	src, err := serializer.ReadSource(ctx, uri, kubeconfig)
	if err != nil {
		return t, fmt.Errorf("failed to read tolerances: %w", err)
	}
	if err := serializer.Decode(src.Data, src.Format, &t); err != nil {
		return t, fmt.Errorf("failed to parse tolerances %q: %w", uri, err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}

	slog.Debug("loaded tolerances", "uri", uri)
	return t, nil
}
