// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

/*
Package metrics provides Prometheus instrumentation for activity acquisition.

All collectors are registered on the default registry through promauto, so
a binary that exposes /metrics (or pushes to a gateway) gets them without
extra wiring. The CLI does neither; the counters still back the data-quality
numbers it prints.

# Metric Families

Range fetcher:
  - stridelog_fetch_pages_total: pages retrieved (counter)
  - stridelog_fetch_records_total{outcome}: kept, skipped_future, undated, stop_older
  - stridelog_fetch_duration_seconds: whole-fetch latency (histogram)
  - stridelog_fetch_stop_total{reason}: empty_page, short_page,
    older_than_start, max_pages, cancelled, error

Classifier:
  - stridelog_classify_total{variant}
  - stridelog_classify_errors_total

Data quality:
  - stridelog_partial_data_warnings_total{reason}

Session and auth:
  - stridelog_auth_total{method,outcome}
  - stridelog_session_persist_errors_total

Provider API:
  - stridelog_provider_requests_total{operation,status_code}
  - stridelog_provider_request_duration_seconds{operation}
  - stridelog_provider_rate_limited_total{operation}
  - stridelog_circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - stridelog_circuit_breaker_requests_total{name,result}
  - stridelog_circuit_breaker_consecutive_failures{name}
  - stridelog_circuit_breaker_state_transitions_total{name,from_state,to_state}

# Cardinality

Every label takes values from a small closed set (outcomes, reasons, sport
variants, operation names). Activity ids and sport keys are never used as
label values.
*/
package metrics
