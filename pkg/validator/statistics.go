/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"math"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
)

// checkStatistics recomputes the statistics block from the race results.
func checkStatistics(rec *coupon.Record, tol Tolerances) []report.Finding {
	f := newFindings(CheckStatistics)

	st := rec.Statistics
	if st == nil {
		f.warnf("statistics-missing", nil, "No statistics section found")
		return f.result()
	}

	if avg, ok := AverageWinnerOdds(rec); ok && math.Abs(avg-st.AverageWinnerOdds) > tol.AverageOddsTolerance+floatSlack {
		f.errorf("average-odds-mismatch", kv{"expected": avg, "actual": st.AverageWinnerOdds},
			"Average winner odds mismatch: calculated %.2f, recorded %.2f", avg, st.AverageWinnerOdds)
	}

	if favs := FavoriteWins(rec, tol.FavoriteMaxNumber); favs != st.FavoriteWins {
		f.errorf("favorite-wins-mismatch", kv{"expected": favs, "actual": st.FavoriteWins},
			"Favorite wins mismatch: calculated %d, recorded %d", favs, st.FavoriteWins)
	}

	if c := st.CoveragePercentage; c < tol.CoverageMin || c > tol.CoverageMax {
		f.warnf("coverage-unrealistic", kv{"coveragePercentage": c},
			"Coverage percentage %g%% seems unrealistic", c)
	}

	if b := st.AverageBetSize; b < tol.AverageBetSizeMin || b > tol.AverageBetSizeMax {
		f.warnf("bet-size-unrealistic", kv{"averageBetSize": b},
			"Average bet size %s kr seems unrealistic", amount(b))
	}

	return f.result()
}

// AverageWinnerOdds returns the mean of the non-zero winner odds.
func AverageWinnerOdds(rec *coupon.Record) (float64, bool) {
	var sum float64
	n := 0
	for _, rr := range rec.RaceResults {
		if rr.WinnerOdds != 0 {
			sum += rr.WinnerOdds
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// FavoriteWins counts races won by a horse numbered 1..maxNumber. Low
// saddle numbers stand in for the favorites.
func FavoriteWins(rec *coupon.Record, maxNumber int) int {
	n := 0
	for _, rr := range rec.RaceResults {
		if rr.Winner > 0 && rr.Winner <= maxNumber {
			n++
		}
	}
	return n
}
