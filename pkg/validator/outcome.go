/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"slices"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
)

// checkOutcome recomputes every hit flag and the correct race count from
// the markings and winners.
func checkOutcome(rec *coupon.Record, _ Tolerances) []report.Finding {
	f := newFindings(CheckOutcome)

	for i := range rec.RaceResults {
		race := i + 1
		rr := &rec.RaceResults[i]
		marked := rec.MarkedHorses(race)
		should := slices.Contains(marked, rr.Winner)
		if rr.Hit != should {
			f.errorf("hit-mismatch",
				kv{"race": race, "winner": rr.Winner, "marked": marked, "recorded": rr.Hit, "expected": should},
				"Race %d: Hit calculation wrong. Winner %d, marked %v, recorded as %t, should be %t",
				race, rr.Winner, marked, rr.Hit, should)
		}
	}

	calculated := CorrectRaces(rec)
	if recorded := rec.Outcome().CorrectRaces; calculated != recorded {
		f.errorf("correct-races-mismatch", kv{"expected": calculated, "actual": recorded},
			"Correct races mismatch: calculated %d, recorded %d", calculated, recorded)
	}

	return f.result()
}

// CorrectRaces counts the races whose winner is among the marked horses.
func CorrectRaces(rec *coupon.Record) int {
	n := 0
	for i := range rec.RaceResults {
		if slices.Contains(rec.MarkedHorses(i+1), rec.RaceResults[i].Winner) {
			n++
		}
	}
	return n
}
