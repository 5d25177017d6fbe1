/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"math"
	"sort"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
)

// checkIntegrity verifies finishing positions, horse numbers and the
// declared winner of every race.
func checkIntegrity(rec *coupon.Record, tol Tolerances) []report.Finding {
	f := newFindings(CheckIntegrity)

	for i := range rec.RaceResults {
		race := i + 1
		rr := &rec.RaceResults[i]

		if len(rr.Results) != rr.TotalStarters {
			f.errorf("starter-count", kv{"race": race, "expected": rr.TotalStarters, "actual": len(rr.Results)},
				"Race %d: Result count (%d) doesn't match total starters (%d)", race, len(rr.Results), rr.TotalStarters)
		}
		if rr.TotalStarters < 0 || rr.TotalStarters > tol.MaxStarters {
			f.errorf("starters-out-of-range", kv{"race": race, "totalStarters": rr.TotalStarters, "max": tol.MaxStarters},
				"Race %d: Total starters %d outside plausible range 0-%d", race, rr.TotalStarters, tol.MaxStarters)
		}

		positions(f, race, rr, tol.MaxStarters)
		horseNumbers(f, race, rr)
		winner(f, race, rr, tol)
	}

	return f.result()
}

// positions lists at most max(len(results), maxStarters) missing positions;
// the rest are only counted.
func positions(f *findings, race int, rr *coupon.RaceResult, maxStarters int) {
	seen := make(map[int]int, len(rr.Results))
	for _, h := range rr.Results {
		seen[h.Position]++
	}

	var outside []int
	inRange := 0
	for p := range seen {
		if p < 1 || p > rr.TotalStarters {
			outside = append(outside, p)
		} else {
			inRange++
		}
	}
	sort.Ints(outside)
	duplicates := len(rr.Results) - len(seen)

	missingCount := max(rr.TotalStarters-inRange, 0)
	limit := min(rr.TotalStarters, max(len(rr.Results), maxStarters))
	var missing []int
	for p := 1; p <= limit; p++ {
		if seen[p] == 0 {
			missing = append(missing, p)
		}
	}

	if missingCount > 0 {
		ctx := kv{"race": race, "positions": missing, "count": missingCount}
		if rest := missingCount - len(missing); rest > 0 {
			f.errorf("missing-positions", ctx, "Race %d: Missing positions %v and %d more", race, missing, rest)
		} else {
			f.errorf("missing-positions", ctx, "Race %d: Missing positions %v", race, missing)
		}
	}
	if duplicates > 0 {
		f.errorf("duplicate-positions", kv{"race": race, "count": duplicates},
			"Race %d: %d duplicate positions found", race, duplicates)
	}
	if len(outside) > 0 {
		f.errorf("unexpected-positions", kv{"race": race, "positions": outside},
			"Race %d: Positions outside 1-%d: %v", race, rr.TotalStarters, outside)
	}
}

func horseNumbers(f *findings, race int, rr *coupon.RaceResult) {
	seen := make(map[int]int, len(rr.Results))
	var dups []int
	for _, h := range rr.Results {
		seen[h.Horse]++
		if seen[h.Horse] == 2 {
			dups = append(dups, h.Horse)
		}
	}
	if len(dups) > 0 {
		sort.Ints(dups)
		f.errorf("duplicate-horses", kv{"race": race, "horses": dups},
			"Race %d: Duplicate horse numbers found: %v", race, dups)
	}
}

func winner(f *findings, race int, rr *coupon.RaceResult, tol Tolerances) {
	first, ok := rr.PositionOne()
	if !ok {
		return
	}
	if first.Horse != rr.Winner {
		f.errorf("winner-mismatch", kv{"race": race, "expected": rr.Winner, "actual": first.Horse},
			"Race %d: Winner mismatch. Position 1 is horse %d, but winner is %d", race, first.Horse, rr.Winner)
	}
	if first.Name != rr.WinnerName {
		f.errorf("winner-name-mismatch", kv{"race": race, "expected": rr.WinnerName, "actual": first.Name},
			"Race %d: Winner name mismatch. Position 1 is %q, but winnerName is %q", race, first.Name, rr.WinnerName)
	}
	if math.Abs(first.Odds-rr.WinnerOdds) > tol.WinnerOddsTolerance+floatSlack {
		f.errorf("winner-odds-mismatch", kv{"race": race, "expected": rr.WinnerOdds, "actual": first.Odds},
			"Race %d: Winner odds mismatch. Position 1 has odds %.2f, but winnerOdds is %.2f", race, first.Odds, rr.WinnerOdds)
	}
}
