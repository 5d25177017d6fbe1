/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
)

// checkPatterns applies plausibility heuristics to the betting distribution
// and the odds of every race.
func checkPatterns(rec *coupon.Record, tol Tolerances) []report.Finding {
	f := newFindings(CheckPatterns)

	for i := range rec.RaceResults {
		race := i + 1
		rr := &rec.RaceResults[i]

		if bd := rr.BettingDistribution; bd != nil && *bd != (coupon.BettingDistribution{}) {
			if bd.Favorite.Percentage <= bd.SecondChoice.Percentage {
				f.warnf("favorite-not-highest",
					kv{"race": race, "favorite": bd.Favorite.Percentage, "secondChoice": bd.SecondChoice.Percentage},
					"Race %d: Favorite (%.1f%%) should have higher percentage than second choice (%.1f%%)",
					race, bd.Favorite.Percentage, bd.SecondChoice.Percentage)
			}
			for _, c := range []struct {
				name   string
				choice coupon.Choice
			}{
				{"favorite", bd.Favorite},
				{"secondChoice", bd.SecondChoice},
				{"thirdChoice", bd.ThirdChoice},
			} {
				if c.choice.Horse == 0 {
					continue
				}
				if _, ok := rr.Horse(c.choice.Horse); !ok {
					f.errorf("choice-horse-missing", kv{"race": race, "choice": c.name, "horse": c.choice.Horse},
						"Race %d: %s horse %d not found in results", race, c.name, c.choice.Horse)
				}
			}
		}

		oddsRange(f, race, rr, tol)
	}

	return f.result()
}

func oddsRange(f *findings, race int, rr *coupon.RaceResult, tol Tolerances) {
	lo, hi := 0.0, 0.0
	for _, h := range rr.Results {
		if h.Odds <= 0 {
			continue
		}
		if lo == 0 || h.Odds < lo {
			lo = h.Odds
		}
		if h.Odds > hi {
			hi = h.Odds
		}
	}
	if hi == 0 {
		return
	}
	if lo < tol.MinOdds {
		f.warnf("odds-too-low", kv{"race": race, "odds": lo},
			"Race %d: Very low minimum odds (%g)", race, lo)
	}
	if hi > tol.MaxOdds {
		f.warnf("odds-too-high", kv{"race": race, "odds": hi},
			"Race %d: Very high maximum odds (%g)", race, hi)
	}
}
