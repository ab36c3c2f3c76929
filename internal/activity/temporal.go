// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package activity

import (
	"math"
	"time"
)

// Provider timestamp keys.
const (
	keyStartTimeLocal = "startTimeLocal"
	keyStartTimeGMT   = "startTimeGMT"
	keyBeginTimestamp = "beginTimestamp"
)

// fixedLayouts are tried, in order, against the first 19 characters of a
// local timestamp string.
var fixedLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// isoLayouts is the general ISO-8601 fallback for strings that do not match
// a fixed layout (offsets, fractional seconds, bare dates).
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	isoDateLayout,
}

// Epoch-millisecond bounds matching years 0001 through 9999.
const (
	minEpochMillis = -62135596800000
	maxEpochMillis = 253402300799999
)

// LocalDate derives the local calendar date of a record.
//
// The startTimeLocal string is preferred. It is matched against the fixed
// layouts on its first 19 characters, then against general ISO-8601 layouts.
// When no string parses, beginTimestamp is read as epoch milliseconds in UTC.
// Any failure yields ok=false; LocalDate never panics on malformed data.
func LocalDate(raw Raw) (Date, bool) {
	if s, ok := raw[keyStartTimeLocal].(string); ok {
		if t, ok := parseTimestamp(s); ok {
			return DateOf(t), true
		}
	}
	if t, ok := epochMillis(raw[keyBeginTimestamp]); ok {
		return DateOf(t), true
	}
	return Date{}, false
}

// BeginUTC derives the UTC start instant of a record from beginTimestamp,
// falling back to the startTimeGMT string.
func BeginUTC(raw Raw) (time.Time, bool) {
	if t, ok := epochMillis(raw[keyBeginTimestamp]); ok {
		return t, true
	}
	if s, ok := raw[keyStartTimeGMT].(string); ok {
		if t, ok := parseTimestamp(s); ok {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseTimestamp parses a provider timestamp string. Strings without an
// offset are interpreted in UTC, which leaves their wall-clock date intact.
func parseTimestamp(s string) (time.Time, bool) {
	if len(s) >= 19 {
		head := s[:19]
		for _, layout := range fixedLayouts {
			if t, err := time.Parse(layout, head); err == nil {
				return t, true
			}
		}
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// epochMillis interprets v as epoch milliseconds in UTC.
func epochMillis(v interface{}) (time.Time, bool) {
	if _, isBool := v.(bool); isBool || v == nil {
		return time.Time{}, false
	}
	f, ok := numericValue(v)
	if !ok || math.IsNaN(f) || f < minEpochMillis || f > maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(f)).UTC(), true
}
