/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"encoding/json"

	"github.com/rikstoto-innsikt/couponcheck/pkg/header"
)

// Status is the overall verdict of a validation run.
type Status string

const (
	StatusFail      Status = "FAIL"
	StatusPass      Status = "PASS"
	StatusExcellent Status = "EXCELLENT"
)

// Summary holds the finding counts and the derived status.
type Summary struct {
	TotalErrors   int    `json:"total_errors" yaml:"total_errors"`
	TotalWarnings int    `json:"total_warnings" yaml:"total_warnings"`
	TotalInfo     int    `json:"total_info" yaml:"total_info"`
	OverallStatus Status `json:"overall_status" yaml:"overall_status"`
}

// Result is the outcome of validating one record.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Source   string    `json:"source,omitempty" yaml:"source,omitempty"`
	Product  string    `json:"product,omitempty" yaml:"product,omitempty"`
	Summary  Summary   `json:"summary" yaml:"summary"`
	Errors   []string  `json:"errors" yaml:"errors"`
	Warnings []string  `json:"warnings" yaml:"warnings"`
	Info     []string  `json:"info" yaml:"info"`
	Findings []Finding `json:"findings" yaml:"findings"`

	// Error is set when the record could not be loaded at all.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// fatalResult is the wire shape of a Result whose input was unreadable.
type fatalResult struct {
	Error string `json:"error" yaml:"error"`
}

// resultFields has Result's fields without its marshalling methods.
type resultFields Result

// Build aggregates findings into a Result. Order within each severity is
// the order in which findings were produced.
func Build(findings []Finding) *Result {
	r := &Result{
		Errors:   []string{},
		Warnings: []string{},
		Info:     []string{},
		Findings: make([]Finding, 0, len(findings)),
	}
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			r.Errors = append(r.Errors, f.Message)
		case SeverityWarning:
			r.Warnings = append(r.Warnings, f.Message)
		default:
			f.Severity = SeverityInfo
			r.Info = append(r.Info, f.Message)
		}
		r.Findings = append(r.Findings, f)
	}
	r.Summary = Summary{
		TotalErrors:   len(r.Errors),
		TotalWarnings: len(r.Warnings),
		TotalInfo:     len(r.Info),
		OverallStatus: StatusOf(len(r.Errors), len(r.Warnings)),
	}
	return r
}

// Failure returns a fatal Result for a record that could not be loaded.
func Failure(err error) *Result {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &Result{Error: msg}
}

// StatusOf derives the overall status from error and warning counts.
func StatusOf(errs, warnings int) Status {
	switch {
	case errs > 0:
		return StatusFail
	case warnings > 0:
		return StatusPass
	default:
		return StatusExcellent
	}
}

// IsFatal reports whether the record could not be analyzed at all.
func (r *Result) IsFatal() bool {
	return r.Error != ""
}

// Failed reports whether the result is fatal or carries errors.
func (r *Result) Failed() bool {
	return r.IsFatal() || r.Summary.TotalErrors > 0
}

// MarshalJSON renders a fatal result as a single error field.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.IsFatal() {
		return json.Marshal(fatalResult{Error: r.Error})
	}
	return json.Marshal(resultFields(r))
}

// MarshalYAML renders a fatal result as a single error field.
func (r Result) MarshalYAML() (any, error) {
	if r.IsFatal() {
		return fatalResult{Error: r.Error}, nil
	}
	return resultFields(r), nil
}
