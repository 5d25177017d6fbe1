/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
	"github.com/rikstoto-innsikt/couponcheck/pkg/header"
	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
	"github.com/rikstoto-innsikt/couponcheck/pkg/serializer"
)

// Check names.
const (
	CheckStructure  = "structure"
	CheckArithmetic = "arithmetic"
	CheckRules      = "rules"
	CheckPrizes     = "prizes"
	CheckIntegrity  = "integrity"
	CheckPatterns   = "patterns"
	CheckOutcome    = "outcome"
	CheckStatistics = "statistics"
	CheckSummary    = "summary"
)

// CheckFunc inspects a record and returns its findings. It must not modify
// the record.
type CheckFunc func(rec *coupon.Record, tol Tolerances) []report.Finding

// Check is a named check pass.
type Check struct {
	Name string
	Run  CheckFunc
}

// DefaultChecks returns the full ordered list of check passes.
func DefaultChecks() []Check {
	return []Check{
		{Name: CheckStructure, Run: checkStructure},
		{Name: CheckArithmetic, Run: checkArithmetic},
		{Name: CheckRules, Run: checkRules},
		{Name: CheckPrizes, Run: checkPrizes},
		{Name: CheckIntegrity, Run: checkIntegrity},
		{Name: CheckPatterns, Run: checkPatterns},
		{Name: CheckOutcome, Run: checkOutcome},
		{Name: CheckStatistics, Run: checkStatistics},
		{Name: CheckSummary, Run: summarize},
	}
}

// Validator runs check passes over coupon records.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	tolerances Tolerances
	checks     []Check
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithTolerances returns an Option that replaces the default tolerances.
func WithTolerances(t Tolerances) Option {
	return func(v *Validator) {
		v.tolerances = t
	}
}

// WithChecks returns an Option that replaces the default check passes.
func WithChecks(checks ...Check) Option {
	return func(v *Validator) {
		v.checks = checks
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{
		tolerances: DefaultTolerances(),
		checks:     DefaultChecks(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Tolerances returns the thresholds the validator applies.
func (v *Validator) Tolerances() Tolerances {
	return v.tolerances
}

// Validate runs every check pass over rec and aggregates the findings.
// Findings never produce an error; only a nil record or a cancelled
// context do.
func (v *Validator) Validate(ctx context.Context, rec *coupon.Record) (*report.Result, error) {
	start := time.Now()

	if rec == nil {
		return nil, fmt.Errorf("record cannot be nil")
	}

	var all []report.Finding
	for _, c := range v.checks {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		found := c.Run(rec, v.tolerances)
		slog.Debug("check completed", "check", c.Name, "findings", len(found))
		all = append(all, found...)
	}

	result := report.Build(all)
	result.Init(header.KindCouponAnalysis, v.Version)
	if rec.Product.IsValid() {
		result.Product = rec.Product.String()
	}

	observe(result, time.Since(start))

	slog.Debug("validation completed",
		"product", rec.Product,
		"errors", result.Summary.TotalErrors,
		"warnings", result.Summary.TotalWarnings,
		"info", result.Summary.TotalInfo,
		"status", result.Summary.OverallStatus,
		"duration", time.Since(start))

	return result, nil
}

// ValidateBytes decodes data and validates the record. A record that cannot
// be decoded yields a fatal result, not an error.
func (v *Validator) ValidateBytes(ctx context.Context, data []byte, format serializer.Format) (*report.Result, error) {
	rec, err := coupon.Load(data, format)
	if err != nil {
		return v.failure(err), nil
	}
	return v.Validate(ctx, rec)
}

// ValidateURI loads the record at uri (file, "-" for stdin, http(s) URL or
// cm://namespace/name) and validates it. Load failures yield a fatal result.
func (v *Validator) ValidateURI(ctx context.Context, uri, kubeconfig string) (*report.Result, error) {
	rec, err := coupon.FromURI(ctx, uri, kubeconfig)
	if err != nil {
		slog.Debug("failed to load record", "uri", uri, "error", err)
		result := v.failure(err)
		result.Source = uri
		return result, nil
	}

	result, err := v.Validate(ctx, rec)
	if err != nil {
		return nil, err
	}
	result.Source = uri
	return result, nil
}

// ValidateFile loads and validates the record file at path.
func (v *Validator) ValidateFile(ctx context.Context, path string) (*report.Result, error) {
	return v.ValidateURI(ctx, path, "")
}

func (v *Validator) failure(err error) *report.Result {
	validationTotal.WithLabelValues(statusFatal).Inc()
	return report.Failure(err)
}
