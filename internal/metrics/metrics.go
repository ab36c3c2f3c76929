// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch record outcomes.
const (
	OutcomeKept          = "kept"
	OutcomeSkippedFuture = "skipped_future"
	OutcomeUndated       = "undated"
	OutcomeStopOlder     = "stop_older"
)

// Fetch stop reasons.
const (
	StopEmptyPage = "empty_page"
	StopShortPage = "short_page"
	StopOlder     = "older_than_start"
	StopMaxPages  = "max_pages"
	StopCancelled = "cancelled"
	StopError     = "error"
)

var (
	// Range Fetcher Metrics
	FetchPages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stridelog_fetch_pages_total",
			Help: "Total number of activity list pages retrieved",
		},
	)

	FetchRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stridelog_fetch_records_total",
			Help: "Raw activity records seen by the range fetcher, by outcome",
		},
		[]string{"outcome"}, // kept, skipped_future, undated, stop_older
	)

	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stridelog_fetch_duration_seconds",
			Help:    "Duration of complete range fetches in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	FetchStops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stridelog_fetch_stop_total",
			Help: "Range fetch terminations by reason",
		},
		[]string{"reason"},
	)

	// Classifier Metrics
	ClassifyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stridelog_classify_total",
			Help: "Activity summaries classified, by variant",
		},
		[]string{"variant"}, // cycling, running, swimming, generic
	)

	ClassifyErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stridelog_classify_errors_total",
			Help: "Raw records that could not be classified (missing or invalid activityId)",
		},
	)

	// Data Quality Metrics
	PartialDataWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stridelog_partial_data_warnings_total",
			Help: "Records returned with incomplete data, by reason",
		},
		[]string{"reason"},
	)

	// Session/Auth Metrics
	AuthTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stridelog_auth_total",
			Help: "Authentication attempts by method and outcome",
		},
		[]string{"method", "outcome"}, // method: session, login; outcome: success, failure, skipped
	)

	SessionPersistErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stridelog_session_persist_errors_total",
			Help: "Failures writing the cached session file (non-fatal)",
		},
	)

	// Provider API Metrics
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stridelog_provider_requests_total",
			Help: "HTTP requests sent to the provider API",
		},
		[]string{"operation", "status_code"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stridelog_provider_request_duration_seconds",
			Help:    "Latency of provider API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	ProviderRateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stridelog_provider_rate_limited_total",
			Help: "HTTP 429 responses received from the provider",
		},
		[]string{"operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stridelog_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stridelog_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stridelog_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stridelog_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordFetch records a completed range fetch.
func RecordFetch(duration time.Duration, reason string) {
	FetchDuration.Observe(duration.Seconds())
	FetchStops.WithLabelValues(reason).Inc()
}

// RecordFetchRecord counts one raw record by outcome.
func RecordFetchRecord(outcome string) {
	FetchRecords.WithLabelValues(outcome).Inc()
}

// RecordClassification counts one classification result. An empty variant
// with a non-nil error counts as a failure.
func RecordClassification(variant string, err error) {
	if err != nil {
		ClassifyErrors.Inc()
		return
	}
	ClassifyTotal.WithLabelValues(variant).Inc()
}

// RecordPartialData counts a PartialDataWarning.
func RecordPartialData(reason string) {
	PartialDataWarnings.WithLabelValues(reason).Inc()
}

// RecordAuth counts an authentication attempt.
func RecordAuth(method, outcome string) {
	AuthTotal.WithLabelValues(method, outcome).Inc()
}

// RecordProviderRequest records a provider API round trip.
func RecordProviderRequest(operation string, statusCode int, duration time.Duration) {
	code := "error"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	ProviderRequests.WithLabelValues(operation, code).Inc()
	ProviderRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
