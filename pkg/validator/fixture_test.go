/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"strconv"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
)

// betShares sums to exactly 100.
var betShares = []float64{25, 20, 15, 10, 8, 7, 5, 4, 3, 3}

// consistentRecord returns a six-race V64 coupon with ten starters per race
// that passes every check without warnings. Race r is won by horse r and
// every race is a hit.
func consistentRecord() *coupon.Record {
	const racePool = 100000.0

	rec := &coupon.Record{
		ID:         "test-coupon",
		Product:    coupon.ProductV64,
		Track:      "Bjerke",
		Date:       "2025-06-14",
		StartTime:  "18:45",
		BetDetails: &coupon.BetDetails{Stake: 100, Rows: 1, SystemPlay: true},
		PoolInfo:   &coupon.PoolInfo{TotalPool: 1000000},
		Markings:   map[string][]int{},
		Result:     &coupon.Outcome{CorrectRaces: 6, TotalRaces: 6, Payout: 32500},
		Prizes: map[string]coupon.Prize{
			coupon.TierSixCorrect:  {Winners: 10, Amount: 32500},
			coupon.TierFiveCorrect: {Winners: 100, Amount: 1950},
			coupon.TierFourCorrect: {Winners: 1000, Amount: 130},
		},
	}

	var oddsSum float64
	favorites := 0
	for r := 1; r <= 6; r++ {
		winner := r
		rr := coupon.RaceResult{
			Race:          r,
			TotalStarters: len(betShares),
			PoolSize:      racePool,
			Winner:        winner,
			WinnerName:    horseName(r, winner),
			WinnerOdds:    100 / betShares[winner-1],
			Hit:           true,
			BettingDistribution: &coupon.BettingDistribution{
				Favorite:     coupon.Choice{Horse: 1, Percentage: betShares[0]},
				SecondChoice: coupon.Choice{Horse: 2, Percentage: betShares[1]},
				ThirdChoice:  coupon.Choice{Horse: 3, Percentage: betShares[2]},
			},
		}
		next := 2
		for i, share := range betShares {
			horse := i + 1
			pos := 1
			if horse != winner {
				pos = next
				next++
			}
			rr.Results = append(rr.Results, coupon.HorseEntry{
				Horse:         horse,
				Name:          horseName(r, horse),
				Position:      pos,
				Odds:          100 / share,
				PercentageBet: share,
				AmountBet:     racePool * share / 100,
			})
		}
		rec.RaceResults = append(rec.RaceResults, rr)
		rec.Markings[strconv.Itoa(r)] = []int{winner, winner%len(betShares) + 1}

		oddsSum += rr.WinnerOdds
		if winner <= 3 {
			favorites++
		}
	}

	rec.Statistics = &coupon.Statistics{
		AverageWinnerOdds:  oddsSum / 6,
		FavoriteWins:       favorites,
		CoveragePercentage: 1,
		AverageBetSize:     100,
	}
	return rec
}

func horseName(race, horse int) string {
	return fmt.Sprintf("Horse %d-%d", race, horse)
}

// byCode returns the findings carrying code.
func byCode(findings []report.Finding, code string) []report.Finding {
	var out []report.Finding
	for _, f := range findings {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}

// bySeverity returns the findings of the given severity.
func bySeverity(findings []report.Finding, sev report.Severity) []report.Finding {
	var out []report.Finding
	for _, f := range findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}
