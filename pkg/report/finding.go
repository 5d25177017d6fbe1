/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package report

import "fmt"

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is a single diagnostic produced by a check.
type Finding struct {
	Severity Severity       `json:"severity" yaml:"severity"`
	Check    string         `json:"check" yaml:"check"`
	Code     string         `json:"code" yaml:"code"`
	Message  string         `json:"message" yaml:"message"`
	Context  map[string]any `json:"context,omitempty" yaml:"context,omitempty"`
}

// String returns the finding as "severity [check/code] message".
func (f Finding) String() string {
	return fmt.Sprintf("%s [%s/%s] %s", f.Severity, f.Check, f.Code, f.Message)
}
