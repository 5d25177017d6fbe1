/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package coupon

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Product is a pooled bet type. It determines the race count and prize tiers.
type Product string

const (
	ProductV75 Product = "V75"
	ProductV65 Product = "V65"
	ProductV64 Product = "V64"
	ProductV5  Product = "V5"
	ProductV4  Product = "V4"
	ProductDD  Product = "DD"
)

// Prize tier keys as they appear in the prizes table.
const (
	TierSevenCorrect = "sevenCorrect"
	TierSixCorrect   = "sixCorrect"
	TierFiveCorrect  = "fiveCorrect"
	TierFourCorrect  = "fourCorrect"
	TierTwoCorrect   = "twoCorrect"
)

// Tier is a payout bracket keyed by the number of correct races.
type Tier struct {
	Key     string
	Correct int
}

type productSpec struct {
	races int
	tiers []Tier // highest first
}

var products = map[Product]productSpec{
	ProductV75: {races: 7, tiers: []Tier{{TierSevenCorrect, 7}, {TierSixCorrect, 6}, {TierFiveCorrect, 5}}},
	ProductV65: {races: 6, tiers: []Tier{{TierSixCorrect, 6}, {TierFiveCorrect, 5}}},
	ProductV64: {races: 6, tiers: []Tier{{TierSixCorrect, 6}, {TierFiveCorrect, 5}, {TierFourCorrect, 4}}},
	ProductV5:  {races: 5, tiers: []Tier{{TierFiveCorrect, 5}}},
	ProductV4:  {races: 4, tiers: []Tier{{TierFourCorrect, 4}}},
	ProductDD:  {races: 2, tiers: []Tier{{TierTwoCorrect, 2}}},
}

// SupportedProducts returns the supported product names in display order.
func SupportedProducts() []string {
	return []string{
		string(ProductV75), string(ProductV65), string(ProductV64),
		string(ProductV5), string(ProductV4), string(ProductDD),
	}
}

// ParseProduct parses a product name case-insensitively.
func ParseProduct(s string) (Product, bool) {
	p := Product(strings.ToUpper(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// IsValid reports whether p is a known product.
func (p Product) IsValid() bool {
	_, ok := products[p]
	return ok
}

// String returns the product name.
func (p Product) String() string {
	return string(p)
}

// Races returns the number of races on the coupon, or 0 for unknown products.
func (p Product) Races() int {
	return products[p].races
}

// Tiers returns the prize tiers, highest first.
func (p Product) Tiers() []Tier {
	return products[p].tiers
}

// TierFor returns the tier paying for the given number of correct races.
func (p Product) TierFor(correct int) (Tier, bool) {
	for _, t := range products[p].tiers {
		if t.Correct == correct {
			return t, true
		}
	}
	return Tier{}, false
}

// MinPayingCorrect returns the lowest number of correct races that pays,
// or 0 for unknown products.
func (p Product) MinPayingCorrect() int {
	tiers := products[p].tiers
	if len(tiers) == 0 {
		return 0
	}
	return tiers[len(tiers)-1].Correct
}

// SuggestProduct returns the known product closest to s by edit distance.
// Returns false when nothing is within two edits.
func SuggestProduct(s string) (Product, bool) {
	in := strings.ToUpper(strings.TrimSpace(s))
	best, bestDist := Product(""), 3
	for _, name := range SupportedProducts() {
		if d := levenshtein.ComputeDistance(in, name); d < bestDist {
			best, bestDist = Product(name), d
		}
	}
	return best, best != ""
}
