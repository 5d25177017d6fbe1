/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"strings"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
)

// checkStructure verifies required fields, the product and race counts.
func checkStructure(rec *coupon.Record, _ Tolerances) []report.Finding {
	f := newFindings(CheckStructure)

	for _, field := range coupon.RequiredFields {
		if !rec.Has(field) {
			f.errorf("missing-field", kv{"field": field}, "Missing required field: %s", field)
		}
	}

	if !rec.Has(coupon.FieldProduct) {
		return f.result()
	}

	product := rec.Product
	if !product.IsValid() {
		msg := "Unknown product %q, supported products: %s"
		args := []any{string(product), strings.Join(coupon.SupportedProducts(), ", ")}
		ctx := kv{"product": string(product)}
		if s, ok := coupon.SuggestProduct(string(product)); ok {
			msg += " (did you mean %s?)"
			args = append(args, s)
			ctx["suggestion"] = s.String()
		}
		f.errorf("unknown-product", ctx, msg, args...)
		return f.result()
	}

	want := product.Races()
	if got := len(rec.RaceResults); got != want {
		f.errorf("race-count", kv{"product": product.String(), "expected": want, "actual": got},
			"%s must have exactly %d races, found %d", product, want, got)
	}

	if rec.Result != nil && rec.Result.TotalRaces != want {
		f.errorf("total-races", kv{"expected": want, "actual": rec.Result.TotalRaces},
			"Result totalRaces should be %d for %s, found %d", want, product, rec.Result.TotalRaces)
	}

	return f.result()
}
