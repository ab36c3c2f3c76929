// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package activity

import (
	"math"
	"strconv"
	"strings"
)

// Raw is a provider activity record as decoded from JSON. Keys and their
// presence are not stable across sport types or provider versions.
type Raw map[string]interface{}

// numberLiteral matches json.Number from both encoding/json and goccy/go-json
// without tying this package to a decoder.
type numberLiteral interface {
	Float64() (float64, error)
	Int64() (int64, error)
	String() string
}

// Round2 rounds v to 2 decimal places. The exact binary value is rounded to
// the nearest decimal, so 0.005 (stored slightly above) becomes 0.01 and
// 0.015 (stored slightly below) becomes 0.01. Rounding an already rounded
// value returns it unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// roundValue applies the rounding rule to a single untyped value:
// numbers become rounded float64, booleans and every other type pass through.
func roundValue(v interface{}) interface{} {
	if _, isBool := v.(bool); isBool {
		return v
	}
	f, ok := numericValue(v)
	if !ok {
		return v
	}
	return Round2(f)
}

// Normalize returns a shallow copy of raw with every listed key rounded to
// 2 decimals. The input is never mutated.
func Normalize(raw Raw, keys []string) Raw {
	out := make(Raw, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	for _, k := range keys {
		if v, ok := out[k]; ok {
			out[k] = roundValue(v)
		}
	}
	return out
}

// numericValue converts JSON and Go numeric types to float64. Booleans,
// strings and containers are not numeric.
func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case numberLiteral:
		f, err := n.Float64()
		if err != nil || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// floatField reads an optional numeric field. Unusable values yield nil.
func floatField(raw Raw, key string) *float64 {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	f, ok := numericValue(v)
	if !ok || math.IsNaN(f) {
		return nil
	}
	return &f
}

// boolField reads an optional boolean field.
func boolField(raw Raw, key string) *bool {
	b, ok := raw[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

// stringField reads an optional string field.
func stringField(raw Raw, key string) *string {
	s, ok := raw[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// int64Field reads an optional integral field. Fractional values are truncated
// toward zero, values outside the int64 range are treated as absent.
func int64Field(raw Raw, key string) *int64 {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	if n, isLit := v.(numberLiteral); isLit {
		if i, err := n.Int64(); err == nil {
			return &i
		}
	}
	f, ok := numericValue(v)
	if !ok || math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return nil
	}
	i := int64(f)
	return &i
}

// parseActivityID coerces an activityId value to an integer. Integral numbers
// and decimal integer strings are accepted; everything else is rejected.
func parseActivityID(v interface{}) (int64, error) {
	switch id := v.(type) {
	case nil:
		return 0, ErrMissingActivityID
	case bool:
		return 0, ErrInvalidActivityID
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return 0, ErrInvalidActivityID
		}
		return i, nil
	case numberLiteral:
		if i, err := id.Int64(); err == nil {
			return i, nil
		}
	}

	f, ok := numericValue(v)
	if !ok || math.IsNaN(f) || f != math.Trunc(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, ErrInvalidActivityID
	}
	return int64(f), nil
}
