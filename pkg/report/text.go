/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	bannerWidth  = 80
	sectionWidth = 40
)

// WriteText renders the human-readable report. It satisfies
// serializer.TextWriter so Results can be written with FormatText.
func (r *Result) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if r.IsFatal() {
		fmt.Fprintf(bw, "ERROR: %s\n", r.Error)
		return bw.Flush()
	}

	banner := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(bw, banner)
	fmt.Fprintln(bw, r.title())
	fmt.Fprintln(bw, banner)
	if r.Source != "" {
		fmt.Fprintf(bw, "File: %s\n\n", r.Source)
	}
	fmt.Fprintf(bw, "OVERALL STATUS: %s\n", r.Summary.OverallStatus)
	fmt.Fprintf(bw, "Total Errors: %d\n", r.Summary.TotalErrors)
	fmt.Fprintf(bw, "Total Warnings: %d\n", r.Summary.TotalWarnings)
	fmt.Fprintf(bw, "Total Info Items: %d\n", r.Summary.TotalInfo)
	fmt.Fprintln(bw)

	writeSection(bw, "CRITICAL ERRORS:", r.Errors)
	writeSection(bw, "WARNINGS:", r.Warnings)
	writeSection(bw, "INFORMATIONAL:", r.Info)

	switch r.Summary.OverallStatus {
	case StatusExcellent:
		fmt.Fprintln(bw, "ALL CHECKS PASSED - Data appears to be mathematically consistent")
		fmt.Fprintf(bw, "   and follows proper %s business logic!\n", r.productLabel())
	case StatusPass:
		fmt.Fprintln(bw, "No critical errors found, but some warnings noted above.")
	default:
		fmt.Fprintln(bw, "Critical errors found that need attention.")
	}
	fmt.Fprintln(bw, banner)

	return bw.Flush()
}

func (r *Result) title() string {
	if r.Product == "" {
		return "COUPON CONSISTENCY ANALYSIS REPORT"
	}
	return fmt.Sprintf("%s COUPON CONSISTENCY ANALYSIS REPORT", r.Product)
}

func (r *Result) productLabel() string {
	if r.Product == "" {
		return "coupon"
	}
	return r.Product
}

func writeSection(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", sectionWidth))
	for i, item := range items {
		fmt.Fprintf(w, "%2d. %s\n", i+1, item)
	}
	fmt.Fprintln(w)
}
