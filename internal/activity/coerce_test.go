// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package activity

import (
	"errors"
	"math"
	"testing"

	"github.com/goccy/go-json"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already two decimals", 12.34, 12.34},
		{"rounds down", 5000.123, 5000.12},
		{"rounds up", 1800.456, 1800.46},
		{"integer", 42, 42},
		{"negative", -3.14159, -3.14},
		{"zero", 0, 0},
		{"half cent stored above", 0.005, 0.01},
		{"half cent stored below", 0.015, 0.01},
		{"0.065 stored above", 0.065, 0.07},
		{"large distance stored below", 10000.455, 10000.45},
		{"large value", 1e16 + 2, 1e16 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.in); got != tt.want {
				t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRound2_NonFinite(t *testing.T) {
	if got := Round2(math.NaN()); !math.IsNaN(got) {
		t.Errorf("Round2(NaN) = %v, want NaN", got)
	}
	if got := Round2(math.Inf(1)); !math.IsInf(got, 1) {
		t.Errorf("Round2(+Inf) = %v, want +Inf", got)
	}
}

func TestRound2_Idempotent(t *testing.T) {
	inputs := []float64{0.005, 0.015, 1.005, 2.675, 1234.5678, -0.125, 99.995, 7}
	for _, v := range inputs {
		once := Round2(v)
		if twice := Round2(once); twice != once {
			t.Errorf("Round2 not idempotent for %v: %v then %v", v, once, twice)
		}
	}
}

func TestNormalize(t *testing.T) {
	raw := Raw{
		"distance":  5000.123,
		"duration":  json.Number("1800.456"),
		"flag":      true,
		"untouched": 3.14159,
		"name":      "Morning",
	}
	keys := []string{"distance", "duration", "flag", "missing"}

	got := Normalize(raw, keys)

	if got["distance"] != 5000.12 {
		t.Errorf("distance = %v, want 5000.12", got["distance"])
	}
	if got["duration"] != 1800.46 {
		t.Errorf("duration = %v, want 1800.46", got["duration"])
	}
	if got["flag"] != true {
		t.Errorf("flag = %v, booleans must not be rounded", got["flag"])
	}
	if got["untouched"] != 3.14159 {
		t.Errorf("untouched = %v, keys outside the list must not change", got["untouched"])
	}
	if _, ok := got["missing"]; ok {
		t.Error("Normalize must not add keys that were absent")
	}
	if raw["distance"] != 5000.123 {
		t.Error("Normalize must not mutate its input")
	}
}

func TestFloatField(t *testing.T) {
	raw := Raw{
		"f":    1.5,
		"i":    3,
		"num":  json.Number("2.25"),
		"bool": true,
		"str":  "12",
		"null": nil,
		"nan":  math.NaN(),
	}

	tests := []struct {
		key  string
		want *float64
	}{
		{"f", ptr(1.5)},
		{"i", ptr(3.0)},
		{"num", ptr(2.25)},
		{"bool", nil},
		{"str", nil},
		{"null", nil},
		{"nan", nil},
		{"absent", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := floatField(raw, tt.key)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("floatField(%q) = %v, want nil", tt.key, *got)
			case tt.want != nil && got == nil:
				t.Errorf("floatField(%q) = nil, want %v", tt.key, *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("floatField(%q) = %v, want %v", tt.key, *got, *tt.want)
			}
		})
	}
}

func TestParseActivityID(t *testing.T) {
	tests := []struct {
		name    string
		in      interface{}
		want    int64
		wantErr error
	}{
		{"float64 integral", float64(12345), 12345, nil},
		{"int", 7, 7, nil},
		{"json number", json.Number("9876543210"), 9876543210, nil},
		{"decimal string", "42", 42, nil},
		{"padded string", " 42 ", 42, nil},
		{"nil", nil, 0, ErrMissingActivityID},
		{"bool", true, 0, ErrInvalidActivityID},
		{"fractional", 1.5, 0, ErrInvalidActivityID},
		{"fractional json number", json.Number("1.5"), 0, ErrInvalidActivityID},
		{"non numeric string", "abc", 0, ErrInvalidActivityID},
		{"object", map[string]interface{}{}, 0, ErrInvalidActivityID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseActivityID(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parseActivityID(%v) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseActivityID(%v) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseActivityID(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
