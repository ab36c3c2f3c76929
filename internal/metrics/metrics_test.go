// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordFetch(t *testing.T) {
	before := testutil.ToFloat64(FetchStops.WithLabelValues(StopShortPage))

	RecordFetch(1500*time.Millisecond, StopShortPage)

	if got := testutil.ToFloat64(FetchStops.WithLabelValues(StopShortPage)); got != before+1 {
		t.Errorf("fetch_stop_total{short_page} = %v, want %v", got, before+1)
	}
}

func TestRecordFetchRecord(t *testing.T) {
	outcomes := []string{OutcomeKept, OutcomeSkippedFuture, OutcomeUndated, OutcomeStopOlder}
	for _, outcome := range outcomes {
		before := testutil.ToFloat64(FetchRecords.WithLabelValues(outcome))
		RecordFetchRecord(outcome)
		if got := testutil.ToFloat64(FetchRecords.WithLabelValues(outcome)); got != before+1 {
			t.Errorf("fetch_records_total{%s} = %v, want %v", outcome, got, before+1)
		}
	}
}

func TestRecordClassification(t *testing.T) {
	beforeOK := testutil.ToFloat64(ClassifyTotal.WithLabelValues("running"))
	beforeErr := testutil.ToFloat64(ClassifyErrors)

	RecordClassification("running", nil)
	RecordClassification("", errors.New("activityId is missing"))

	if got := testutil.ToFloat64(ClassifyTotal.WithLabelValues("running")); got != beforeOK+1 {
		t.Errorf("classify_total{running} = %v, want %v", got, beforeOK+1)
	}
	if got := testutil.ToFloat64(ClassifyErrors); got != beforeErr+1 {
		t.Errorf("classify_errors_total = %v, want %v", got, beforeErr+1)
	}
}

func TestRecordAuthAndPartialData(t *testing.T) {
	before := testutil.ToFloat64(AuthTotal.WithLabelValues("session", "failure"))
	RecordAuth("session", "failure")
	if got := testutil.ToFloat64(AuthTotal.WithLabelValues("session", "failure")); got != before+1 {
		t.Errorf("auth_total{session,failure} = %v, want %v", got, before+1)
	}

	beforeWarn := testutil.ToFloat64(PartialDataWarnings.WithLabelValues("undated"))
	RecordPartialData("undated")
	if got := testutil.ToFloat64(PartialDataWarnings.WithLabelValues("undated")); got != beforeWarn+1 {
		t.Errorf("partial_data_warnings_total{undated} = %v, want %v", got, beforeWarn+1)
	}
}

func TestRecordProviderRequest(t *testing.T) {
	tests := []struct {
		status    int
		wantLabel string
	}{
		{200, "200"},
		{429, "429"},
		{0, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.wantLabel, func(t *testing.T) {
			counter := ProviderRequests.WithLabelValues("list", tt.wantLabel)
			before := testutil.ToFloat64(counter)
			RecordProviderRequest("list", tt.status, 20*time.Millisecond)
			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("provider_requests_total{list,%s} = %v, want %v", tt.wantLabel, got, before+1)
			}
		})
	}
}

// TestCircuitBreakerMetrics tests circuit breaker metric recording
func TestCircuitBreakerMetrics(t *testing.T) {
	cbName := "provider-api"

	CircuitBreakerState.WithLabelValues(cbName).Set(2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(cbName)); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}

	CircuitBreakerRequests.WithLabelValues(cbName, "rejected").Inc()
	CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(5)
	CircuitBreakerTransitions.WithLabelValues(cbName, "closed", "open").Inc()
}

// TestMetricsRegistered verifies every collector describes itself
func TestMetricsRegistered(t *testing.T) {
	collectors := []prometheus.Collector{
		FetchPages,
		FetchRecords,
		FetchDuration,
		FetchStops,
		ClassifyTotal,
		ClassifyErrors,
		PartialDataWarnings,
		AuthTotal,
		SessionPersistErrors,
		ProviderRequests,
		ProviderRequestDuration,
		ProviderRateLimited,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerConsecutiveFailures,
		CircuitBreakerTransitions,
	}

	for _, c := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		c.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("collector %T has no descriptors", c)
		}
	}
}

// TestMetricGathering lints the default registry
func TestMetricGathering(t *testing.T) {
	RecordFetchRecord(OutcomeKept)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Errorf("metric %s: %s", p.Metric, p.Text)
	}
}
