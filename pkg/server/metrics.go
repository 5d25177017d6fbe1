/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "couponcheck_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "couponcheck_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "couponcheck_http_requests_in_flight",
			Help: "Number of HTTP requests being served",
		},
	)

	rateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "couponcheck_http_rate_limit_rejects_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	panicsRecovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "couponcheck_http_panics_recovered_total",
			Help: "Total number of handler panics recovered",
		},
	)
)
