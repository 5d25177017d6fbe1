/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the couponcheck tool.
//
// # Overview
//
// couponcheck checks settled pari-mutuel coupon records (V75, V65, V64, V5,
// V4 and DD) for internal consistency: pool arithmetic, product rules,
// prize distribution, race result integrity, betting patterns, recorded
// outcome and summary statistics.
//
// # Commands
//
// validate - Check one or more coupon records:
//
//	couponcheck validate coupon.json
//	couponcheck validate a.json b.yaml --format json --output report.json
//	couponcheck validate cm://racing/v75-saturday --fail-on-error
//	couponcheck validate coupon.json --tolerances strict.yaml
//
// Records are read from files, stdin ("-"), HTTP(S) URLs or ConfigMap URIs
// (cm://namespace/name) and checked concurrently. Reports are printed in
// argument order. Use --fail-on-error in pipelines to exit non-zero when a
// record fails or cannot be read.
//
// generate - Produce a synthetic, internally consistent record:
//
//	couponcheck generate --product V75 --seed 42
//	couponcheck generate --product DD --correct 1 --format yaml -o dd.yaml
//
// The same seed and options always produce the same record.
//
// watch - Re-validate records as they appear in a directory:
//
//	couponcheck watch ./out --format json
//
// Files ending in .json, .yaml or .yml are validated when created or
// written, until interrupted.
//
// # Global Flags
//
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// Text (validate default):
//   - The human-readable analysis report
//
// JSON:
//   - Machine-parseable report or record
//
// YAML:
//   - Human-readable, preserves structure
//
// Table:
//   - Flattened FIELD/VALUE rows
//
// # Environment Variables
//
//	LOG_LEVEL              Set logging verbosity (debug, info, warn, error)
//	KUBECONFIG             Path to kubeconfig for cm:// sources and outputs
package cli
