// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

// Package analytics summarizes typed activity summaries for reports: daily
// and per-sport totals and a data quality scan.
//
// All functions are pure over their input. Absent numeric fields contribute
// nothing to sums; they are never treated as zero values of the source.
package analytics
