// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package activity

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestSummaryPublic(t *testing.T) {
	s, err := Classify(Raw{
		"activityId":   float64(77),
		"activityType": map[string]interface{}{"typeKey": "road_biking"},
		"distance":     40000.5,
		"endLatitude":  1.234,
	})
	if err != nil {
		t.Fatalf("Classify() unexpected error: %v", err)
	}

	pub := s.Public(false)

	if pub["activity_id"] != int64(77) {
		t.Errorf("activity_id = %v", pub["activity_id"])
	}
	if pub["type_key"] != "road_biking" {
		t.Errorf("type_key = %v", pub["type_key"])
	}
	if pub["distance"] != 40000.5 {
		t.Errorf("distance = %v", pub["distance"])
	}
	if pub["end_latitude"] != 1.23 {
		t.Errorf("end_latitude = %v", pub["end_latitude"])
	}

	for _, key := range []string{"max_hr", "activity_name", "average_biking_cadence_rpm", "exclude_from_power_curve_reports"} {
		v, ok := pub[key]
		if !ok {
			t.Errorf("%s missing from projection", key)
		}
		if v != nil {
			t.Errorf("%s = %v, want nil for absent field", key, v)
		}
	}

	if _, ok := pub["raw"]; ok {
		t.Error("raw must be excluded by default")
	}
	if _, ok := pub["avg_stride_length"]; ok {
		t.Error("running fields must not appear on a cycling projection")
	}

	if withRaw := s.Public(true); withRaw["raw"] == nil {
		t.Error("raw should be attached when requested")
	}
}

func TestSummaryMarshalJSON(t *testing.T) {
	name := "Lunch Swim"
	s := Summary{ActivityID: 5, TypeKey: "lap_swimming", Variant: VariantSwimming, ActivityName: &name, Swimming: &SwimmingMetrics{}}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if decoded["activity_name"] != "Lunch Swim" {
		t.Errorf("activity_name = %v", decoded["activity_name"])
	}
	if v, ok := decoded["average_swolf"]; !ok || v != nil {
		t.Errorf("average_swolf = %v (present=%v), want explicit null", v, ok)
	}
}

func TestSummaryBeginUTC(t *testing.T) {
	ts := int64(1710113400000)
	s := Summary{BeginTimestamp: &ts}

	got, ok := s.BeginUTC()
	if !ok {
		t.Fatal("BeginUTC() ok = false")
	}
	if want := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("BeginUTC() = %v, want %v", got, want)
	}
}
