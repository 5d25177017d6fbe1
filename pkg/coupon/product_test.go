/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package coupon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Races(t *testing.T) {
	tests := []struct {
		product Product
		races   int
		minPay  int
	}{
		{ProductV75, 7, 5},
		{ProductV65, 6, 5},
		{ProductV64, 6, 4},
		{ProductV5, 5, 5},
		{ProductV4, 4, 4},
		{ProductDD, 2, 2},
		{Product("V99"), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.product.String(), func(t *testing.T) {
			assert.Equal(t, tt.races, tt.product.Races())
			assert.Equal(t, tt.minPay, tt.product.MinPayingCorrect())
			assert.Equal(t, tt.races > 0, tt.product.IsValid())
		})
	}
}

func TestProduct_TierFor(t *testing.T) {
	tier, ok := ProductV64.TierFor(5)
	assert.True(t, ok)
	assert.Equal(t, TierFiveCorrect, tier.Key)

	_, ok = ProductV64.TierFor(3)
	assert.False(t, ok)

	_, ok = ProductV65.TierFor(4)
	assert.False(t, ok)

	assert.Len(t, ProductV64.Tiers(), 3)
	assert.Equal(t, TierSixCorrect, ProductV64.Tiers()[0].Key)
}

func TestParseProduct(t *testing.T) {
	p, ok := ParseProduct(" v64 ")
	assert.True(t, ok)
	assert.Equal(t, ProductV64, p)

	_, ok = ParseProduct("lotto")
	assert.False(t, ok)
}

func TestSuggestProduct(t *testing.T) {
	tests := []struct {
		in     string
		want   Product
		wantOK bool
	}{
		{"V76", ProductV75, true},
		{"v6", ProductV65, true},
		{"DDD", ProductDD, true},
		{"quinella", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := SuggestProduct(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
