/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindCoupon),
		WithAPIVersion("custom/v2"),
		WithMetadata("source", "generator"),
	)

	assert.Equal(t, KindCoupon, h.Kind)
	assert.Equal(t, "custom/v2", h.APIVersion)
	assert.Equal(t, "generator", h.Metadata["source"])
}

func TestWithMetadata_NilMap(t *testing.T) {
	h := &Header{}
	WithMetadata("k", "v")(h)
	assert.Equal(t, map[string]string{"k": "v"}, h.Metadata)
}

func TestInit(t *testing.T) {
	h := New(WithMetadata("stale", "x"))
	h.Init(KindCouponAnalysis, "v1.2.3")

	assert.Equal(t, KindCouponAnalysis, h.Kind)
	assert.Equal(t, "couponcheck.rikstoto.no/v1alpha1", h.APIVersion)
	assert.Equal(t, "v1.2.3", h.Metadata[MetadataVersion])
	assert.NotContains(t, h.Metadata, "stale")

	ts, err := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestInit_NoVersion(t *testing.T) {
	var h Header
	h.Init(KindCoupon, "")
	assert.NotContains(t, h.Metadata, MetadataVersion)
	assert.Contains(t, h.Metadata, MetadataTimestamp)
}
