/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
)

// summarize adds informational notes describing what was analyzed.
func summarize(rec *coupon.Record, tol Tolerances) []report.Finding {
	f := newFindings(CheckSummary)

	if rec.Product.IsValid() {
		f.infof("product", kv{"product": rec.Product.String(), "races": rec.Product.Races(), "totalPool": rec.TotalPool()},
			"Product %s at %s: %d races, total pool %s",
			rec.Product, trackLabel(rec), rec.Product.Races(), amount(rec.TotalPool()))
	}

	n := len(rec.RaceResults)
	f.infof("correct-races", kv{"correctRaces": CorrectRaces(rec), "races": n},
		"Recomputed %d of %d races correct from markings", CorrectRaces(rec), n)

	out := rec.Outcome()
	if tier, ok := rec.Product.TierFor(out.CorrectRaces); ok {
		f.infof("expected-payout", kv{"tier": tier.Key, "rows": rec.Rows(), "expected": ExpectedPayout(rec)},
			"Expected payout %s for %d correct races with %d rows",
			amount(ExpectedPayout(rec)), out.CorrectRaces, rec.Rows())
	}

	if pool := rec.TotalPool(); pool > 0 {
		f.infof("prize-pool", kv{"prizePool": pool * tol.TakeRate},
			"Expected prize pool %s (%.0f%% of total pool)", amount(pool*tol.TakeRate), tol.TakeRate*100)
	}

	return f.result()
}

func trackLabel(rec *coupon.Record) string {
	if rec.Track == "" {
		return "unknown track"
	}
	return rec.Track
}
