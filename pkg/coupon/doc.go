/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package coupon defines the pari-mutuel coupon result record and its loader.
//
// # Overview
//
// A Record describes one settled coupon for a pooled horse-racing product
// (V75, V65, V64, V5, V4 or DD): the pool, the per-race results with odds and
// betting shares, the bettor's markings, the prize table, the outcome and a
// block of summary statistics. Records are produced upstream (for example by
// the generator package) and are treated as read-only snapshots.
//
// # Wire Format
//
// Records are JSON or YAML documents using the producer's camelCase field
// names:
//
//	product: V64
//	track: Bjerke
//	poolInfo:
//	  totalPool: 2500000
//	markings:
//	  "1": [3, 7]
//	raceResults:
//	  - race: 1
//	    totalStarters: 10
//	    winner: 3
//	    ...
//
// # Loading
//
//	rec, err := coupon.FromFile("v64.json")
//	rec, err := coupon.FromURI(ctx, "cm://racing/v64-coupon", "")
//	rec, err := coupon.Load(data, serializer.FormatYAML)
//
// Load failures are returned as a single error; callers turn that into a
// fatal analysis result rather than aborting.
package coupon
