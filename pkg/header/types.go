/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package header

import (
	"fmt"
	"time"
)

// Kind identifies the type of a serialized couponcheck document.
type Kind string

const (
	KindCoupon         Kind = "Coupon"
	KindCouponAnalysis Kind = "CouponAnalysis"
)

const (
	// APIGroup is the group used for every couponcheck document.
	APIGroup = "couponcheck.rikstoto.no"
	// APIVersionV1Alpha1 is the current schema version.
	APIVersionV1Alpha1 = "v1alpha1"

	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
)

// APIVersion returns the fully qualified apiVersion string.
func APIVersion() string {
	return fmt.Sprintf("%s/%s", APIGroup, APIVersionV1Alpha1)
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion returns an Option that sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a new Header instance with the provided functional options.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header carries the kind, schema version and generation metadata of a document.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind, apiVersion and stamps the metadata with the generation
// time and the producing tool version. Existing metadata is replaced.
func (h *Header) Init(kind Kind, version string) {
	h.Kind = kind
	h.APIVersion = APIVersion()
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}
