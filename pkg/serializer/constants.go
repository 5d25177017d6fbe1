/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

// URI scheme constants for input sources and output destinations
const (
	// ConfigMapURIScheme is the URI scheme for Kubernetes ConfigMap sources and destinations.
	// Format: cm://namespace/configmap-name
	ConfigMapURIScheme = "cm://"

	// StdoutURI is the special URI indicating output should be written to stdout
	// (or input read from stdin).
	StdoutURI = "-"

	// ConfigMapRecordKey is the data key read from a ConfigMap holding a coupon record
	// when the ConfigMap carries more than one entry.
	ConfigMapRecordKey = "record"

	// ConfigMapResultKey is the data key prefix written to a ConfigMap destination.
	// The format extension is appended, e.g. "result.json".
	ConfigMapResultKey = "result"

	// maxSourceBytes bounds how much is read from any single input source.
	maxSourceBytes = 16 << 20
)
