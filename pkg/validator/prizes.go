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

// checkPrizes verifies the prize table against the pool and the recorded payout.
// A missing prize table is treated as empty.
func checkPrizes(rec *coupon.Record, tol Tolerances) []report.Finding {
	f := newFindings(CheckPrizes)

	expectedPool := rec.TotalPool() * tol.TakeRate
	var distributed float64
	for _, p := range rec.Prizes {
		distributed += p.Total()
	}

	switch {
	case distributed > expectedPool*tol.PrizeOverRatio:
		f.warnf("prize-over-distribution", kv{"distributed": distributed, "expectedPool": expectedPool},
			"Total prizes (%s) exceed expected prize pool (%s)", amount(distributed), amount(expectedPool))
	case distributed < expectedPool*tol.PrizeUnderRatio:
		f.warnf("prize-under-distribution", kv{"distributed": distributed, "expectedPool": expectedPool},
			"Total prizes (%s) seem too low for prize pool (%s)", amount(distributed), amount(expectedPool))
	}

	tierShares(f, rec, tol)
	payout(f, rec, tol)

	return f.result()
}

// tierShares compares each tier's share of prize money with its target on
// products paying three tiers.
func tierShares(f *findings, rec *coupon.Record, tol Tolerances) {
	tiers := rec.Product.Tiers()
	if len(tiers) != 3 || len(tol.TierShares) != len(tiers) {
		return
	}

	totals := make([]float64, len(tiers))
	var sum float64
	for i, tier := range tiers {
		p, ok := rec.Prizes[tier.Key]
		if !ok {
			return
		}
		totals[i] = p.Total()
		sum += totals[i]
	}
	if sum <= 0 {
		return
	}

	for i, tier := range tiers {
		share := totals[i] / sum * 100
		want := tol.TierShares[i]
		if math.Abs(share-want.Target) > want.Band+floatSlack {
			f.warnf("tier-share", kv{"tier": tier.Key, "share": share, "target": want.Target},
				"%d-correct prize share is %.1f%%, expected ~%.0f%%", tier.Correct, share, want.Target)
		}
	}
}

func payout(f *findings, rec *coupon.Record, tol Tolerances) {
	out := rec.Outcome()
	minPaying := rec.Product.MinPayingCorrect()
	if minPaying == 0 || out.CorrectRaces < minPaying {
		return
	}

	expected := ExpectedPayout(rec)
	if math.Abs(expected-out.Payout) > tol.PayoutEpsilon {
		f.errorf("payout-mismatch",
			kv{"correctRaces": out.CorrectRaces, "rows": rec.Rows(), "expected": expected, "actual": out.Payout},
			"Payout mismatch: expected %s for %d correct races, got %s",
			amount(expected), out.CorrectRaces, amount(out.Payout))
	}
}

// ExpectedPayout recomputes the payout from the prize tier matching the
// recorded correct races and the number of rows played. It returns 0 when
// no tier matches or the tier is absent from the prize table.
func ExpectedPayout(rec *coupon.Record) float64 {
	tier, ok := rec.Product.TierFor(rec.Outcome().CorrectRaces)
	if !ok {
		return 0
	}
	p, ok := rec.Prizes[tier.Key]
	if !ok {
		return 0
	}
	return p.Amount * float64(rec.Rows())
}
