/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package report aggregates validation findings into a Result.
//
// A Result partitions findings by severity, counts them and derives an
// overall status:
//
//	FAIL       at least one error
//	PASS       no errors, at least one warning
//	EXCELLENT  no errors and no warnings
//
// Results serialize to JSON and YAML through the serializer package and
// render as a human-readable report through WriteText. A record that could
// not be loaded produces a fatal Result holding only the error message.
package report
