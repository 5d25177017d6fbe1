/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rikstoto-innsikt/couponcheck/pkg/report"
)

const statusFatal = "FATAL"

var (
	validationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "couponcheck_validations_total",
			Help: "Total number of coupon validations by overall status",
		},
		[]string{"status"},
	)

	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "couponcheck_validation_duration_seconds",
			Help:    "Time spent running all checks on one coupon",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	findingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "couponcheck_findings_total",
			Help: "Total number of findings by severity and code",
		},
		[]string{"severity", "check", "code"},
	)
)

func observe(result *report.Result, d time.Duration) {
	validationTotal.WithLabelValues(string(result.Summary.OverallStatus)).Inc()
	validationDuration.Observe(d.Seconds())
	for _, f := range result.Findings {
		findingsTotal.WithLabelValues(string(f.Severity), f.Check, f.Code).Inc()
	}
}
