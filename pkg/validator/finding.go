/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"

	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
)

// kv is the structured context attached to a finding.
type kv map[string]any

// findings accumulates the output of one check.
type findings struct {
	check string
	list  []report.Finding
}

func newFindings(check string) *findings {
	return &findings{check: check}
}

func (f *findings) add(sev report.Severity, code string, ctx kv, format string, args ...any) {
	f.list = append(f.list, report.Finding{
		Severity: sev,
		Check:    f.check,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Context:  ctx,
	})
}

func (f *findings) errorf(code string, ctx kv, format string, args ...any) {
	f.add(report.SeverityError, code, ctx, format, args...)
}

func (f *findings) warnf(code string, ctx kv, format string, args ...any) {
	f.add(report.SeverityWarning, code, ctx, format, args...)
}

func (f *findings) infof(code string, ctx kv, format string, args ...any) {
	f.add(report.SeverityInfo, code, ctx, format, args...)
}

func (f *findings) result() []report.Finding {
	return f.list
}
