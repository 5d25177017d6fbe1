/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package generator fabricates synthetic, internally consistent coupon
// records.
//
// Generated records satisfy every consistency check: finishing positions
// form a permutation, odds follow the bet shares with a fixed payback,
// bet amounts sum to the race pool, markings hit exactly the requested
// number of races, the prize table respects the take rate and tier shares,
// and the payout and statistics match the race results.
//
// Generation is deterministic for a given seed:
//
//	g := generator.New(
//	    generator.WithSeed(42),
//	    generator.WithProduct(coupon.ProductV64),
//	    generator.WithCorrectRaces(5),
//	)
//	rec, err := g.Generate()
//
// Records are fixtures for tests and demos; the figures are plausible, not
// real.
package generator
