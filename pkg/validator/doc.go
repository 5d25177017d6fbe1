/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package validator checks pari-mutuel coupon result records for internal
// consistency.
//
// A Validator runs an ordered list of checks over a coupon.Record. Each
// check is a pure function of the record and the configured Tolerances and
// returns report findings. The default checks, in order:
//
//	structure   required fields, product and race counts
//	arithmetic  pool sums, per-race amount and percentage sums, implied odds
//	rules       markings per race, marked horses present in results
//	prizes      distributed prize totals, tier shares, payout
//	integrity   finishing positions, horse numbers, declared winner
//	patterns    betting distribution, odds ranges
//	outcome     hit flags and correct race count recomputed from markings
//	statistics  summary block recomputed from race results
//	summary     informational notes
//
// Every check runs regardless of earlier findings; a check that lacks the
// data it needs skips silently. Findings never abort a run.
//
// Usage:
//
//	v := validator.New(
//	    validator.WithVersion(version),
//	    validator.WithTolerances(tol),
//	)
//	result, err := v.ValidateURI(ctx, "coupon.json", "")
//
// Tolerances default to DefaultTolerances and may be loaded from a YAML or
// JSON document with LoadTolerances.
package validator
