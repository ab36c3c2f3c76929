// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package activity

import (
	"time"

	"github.com/goccy/go-json"
)

// Variant names the sport-specific shape of a Summary.
type Variant string

// The closed set of summary variants.
const (
	VariantCycling  Variant = "cycling"
	VariantRunning  Variant = "running"
	VariantSwimming Variant = "swimming"
	VariantGeneric  Variant = "generic"
)

// UnknownTypeKey is the sport key used when a record carries no usable type.
const UnknownTypeKey = "unknown"

// Summary is the typed form of one provider activity summary.
//
// Common fields are present for every sport. Sport-specific metrics live in
// exactly one of Cycling, Running or Swimming, selected by Variant; Generic
// summaries leave all three nil.
type Summary struct {
	ActivityID int64
	TypeKey    string
	Variant    Variant

	ActivityName   *string
	BeginTimestamp *int64 // epoch milliseconds
	EndTimeGMT     *string

	Distance        *float64
	Duration        *float64
	ElapsedDuration *float64

	AverageSpeed *float64
	MaxSpeed     *float64
	AverageHR    *float64
	MaxHR        *float64

	Calories    *float64
	BMRCalories *float64

	ElevationGain *float64
	ElevationLoss *float64

	AvgPower                *float64
	ActivityTrainingLoad    *float64
	AerobicTrainingEffect   *float64
	AnaerobicTrainingEffect *float64

	Cycling  *CyclingMetrics
	Running  *RunningMetrics
	Swimming *SwimmingMetrics

	// Raw is the normalized provider record, including fields this model does
	// not know about. It is excluded from the default public projection.
	Raw Raw
}

// CyclingMetrics holds fields specific to cycling-like activities
// (road biking, virtual rides, indoor cycling).
type CyclingMetrics struct {
	AverageBikingCadenceRPM      *float64
	EndLatitude                  *float64
	EndLongitude                 *float64
	ExcludeFromPowerCurveReports *bool
}

// RunningMetrics holds running dynamics fields.
type RunningMetrics struct {
	AverageRunningCadenceSPM *float64
	AvgGradeAdjustedSpeed    *float64
	AvgGroundContactTime     *float64
	AvgStrideLength          *float64
	AvgVerticalOscillation   *float64
	AvgVerticalRatio         *float64
}

// SwimmingMetrics holds pool and open-water swimming fields.
type SwimmingMetrics struct {
	ActiveLengths         *float64
	AverageSwimCadenceSPM *float64
	AverageSwolf          *float64
	AvgStrokeDistance     *float64
	AvgStrokes            *float64
	FastestSplit100       *float64
}

// LocalDate returns the local calendar date of the activity.
func (s *Summary) LocalDate() (Date, bool) {
	return LocalDate(s.Raw)
}

// BeginUTC returns the UTC start instant of the activity.
func (s *Summary) BeginUTC() (time.Time, bool) {
	if s.BeginTimestamp != nil {
		if t, ok := epochMillis(*s.BeginTimestamp); ok {
			return t, true
		}
	}
	return BeginUTC(s.Raw)
}

// Public returns the stable snake_case projection of the summary. Absent
// fields are present with a nil value. The normalized provider payload is
// attached under "raw" only when includeRaw is true.
func (s *Summary) Public(includeRaw bool) map[string]interface{} {
	spec := specFor(s.Variant)
	out := make(map[string]interface{}, 6+len(commonNumeric)+len(spec.numeric)+len(spec.flags))

	out["activity_id"] = s.ActivityID
	out["type_key"] = s.TypeKey
	out["activity_name"] = derefString(s.ActivityName)
	out["begin_timestamp"] = derefInt64(s.BeginTimestamp)
	out["end_time_gmt"] = derefString(s.EndTimeGMT)

	for _, f := range commonNumeric {
		out[f.name] = derefFloat(*f.ref(s))
	}
	populated := s.hasVariantBlock()
	for _, f := range spec.numeric {
		out[f.name] = nil
		if populated {
			out[f.name] = derefFloat(*f.ref(s))
		}
	}
	for _, f := range spec.flags {
		out[f.name] = nil
		if populated {
			out[f.name] = derefBool(*f.ref(s))
		}
	}

	if includeRaw {
		out["raw"] = s.Raw
	}
	return out
}

// hasVariantBlock reports whether the metrics block for s.Variant is set.
func (s *Summary) hasVariantBlock() bool {
	switch s.Variant {
	case VariantCycling:
		return s.Cycling != nil
	case VariantRunning:
		return s.Running != nil
	case VariantSwimming:
		return s.Swimming != nil
	default:
		return false
	}
}

// MarshalJSON encodes the default public projection.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Public(false))
}

func derefFloat(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func derefBool(p *bool) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func derefString(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func derefInt64(p *int64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
