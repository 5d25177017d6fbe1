/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"strconv"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
)

// checkRules verifies the marking keys and that every marked horse started.
func checkRules(rec *coupon.Record, _ Tolerances) []report.Finding {
	f := newFindings(CheckRules)

	n := rec.RaceCount()
	expected := make(map[string]bool, n)
	var missing []int
	for race := 1; race <= n; race++ {
		key := strconv.Itoa(race)
		expected[key] = true
		if _, ok := rec.Markings[key]; !ok {
			missing = append(missing, race)
		}
	}

	var extra []string
	for key := range rec.Markings {
		if !expected[key] {
			extra = append(extra, key)
		}
	}
	extra = sortedKeys(extra)

	if len(missing) > 0 {
		f.errorf("missing-markings", kv{"races": missing}, "Missing markings for races: %v", missing)
	}
	if len(extra) > 0 {
		f.errorf("unexpected-markings", kv{"keys": extra}, "Unexpected marking keys: %v", extra)
	}

	for i := range rec.RaceResults {
		race := i + 1
		rr := &rec.RaceResults[i]
		for _, horse := range rec.MarkedHorses(race) {
			if _, ok := rr.Horse(horse); !ok {
				f.errorf("marked-horse-missing", kv{"race": race, "horse": horse},
					"Race %d: Marked horse %d not found in results", race, horse)
			}
		}
	}

	return f.result()
}
