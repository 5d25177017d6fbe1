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

// checkArithmetic verifies pool sums and the per-race betting figures.
func checkArithmetic(rec *coupon.Record, tol Tolerances) []report.Finding {
	f := newFindings(CheckArithmetic)

	total := rec.TotalPool()
	if total <= 0 {
		f.errorf("pool-not-positive", kv{"totalPool": total}, "Total pool must be positive")
		return f.result()
	}

	var raceSum float64
	for _, race := range rec.RaceResults {
		raceSum += race.PoolSize
	}
	switch {
	case raceSum > total:
		f.errorf("race-pools-exceed-total", kv{"raceSum": raceSum, "totalPool": total},
			"Sum of race pools (%s) exceeds total pool (%s)", amount(raceSum), amount(total))
	case raceSum < total*tol.RacePoolLowRatio:
		f.warnf("race-pools-low", kv{"raceSum": raceSum, "totalPool": total},
			"Sum of race pools (%s) seems very low compared to total pool (%s)", amount(raceSum), amount(total))
	}

	for i := range rec.RaceResults {
		raceMath(f, i+1, &rec.RaceResults[i], tol)
	}

	return f.result()
}

func raceMath(f *findings, race int, rr *coupon.RaceResult, tol Tolerances) {
	if len(rr.Results) == 0 || rr.PoolSize <= 0 {
		return
	}

	var amountSum, pctSum float64
	for _, h := range rr.Results {
		amountSum += h.AmountBet
		pctSum += h.PercentageBet
	}

	if diff := math.Abs(amountSum - rr.PoolSize); diff > rr.PoolSize*tol.RaceAmountTolerance+floatSlack {
		f.warnf("amount-sum-mismatch", kv{"race": race, "amountSum": amountSum, "poolSize": rr.PoolSize},
			"Race %d: Bet amounts sum (%s) differs from pool size (%s)", race, amount(amountSum), amount(rr.PoolSize))
	}

	if dev := math.Abs(pctSum - 100); dev > tol.PercentageSumTolerance+floatSlack {
		f.errorf("percentage-sum", kv{"race": race, "percentageSum": pctSum},
			"Race %d: Bet percentages sum to %.1f%%, should be ~100%%", race, pctSum)
	}

	for _, h := range rr.Results {
		if h.PercentageBet <= 0 || h.Odds <= 0 {
			continue
		}
		implied := 100 / h.Odds
		if math.Abs(implied-h.PercentageBet) > h.PercentageBet*tol.ImpliedProbabilityDrift+floatSlack {
			f.warnf("implied-probability-drift",
				kv{"race": race, "horse": h.Horse, "odds": h.Odds, "implied": implied, "percentageBet": h.PercentageBet},
				"Race %d, Horse %d: Odds %.2f imply %.1f%% but bet percentage is %.1f%%",
				race, h.Horse, h.Odds, implied, h.PercentageBet)
		}
	}
}
