// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package activity

// numericField maps a provider key to its public name and Summary slot.
type numericField struct {
	key  string
	name string
	ref  func(*Summary) **float64
}

// flagField is the boolean counterpart of numericField.
type flagField struct {
	key  string
	name string
	ref  func(*Summary) **bool
}

// variantSpec describes the sport-specific fields extracted for one variant.
type variantSpec struct {
	variant Variant
	alloc   func(*Summary)
	numeric []numericField
	flags   []flagField

	// roundKeys is the full set of provider keys rounded for this variant,
	// common keys included.
	roundKeys []string
}

// commonNumeric is the allow-list of numeric fields every summary carries.
var commonNumeric = []numericField{
	{"distance", "distance", func(s *Summary) **float64 { return &s.Distance }},
	{"duration", "duration", func(s *Summary) **float64 { return &s.Duration }},
	{"elapsedDuration", "elapsed_duration", func(s *Summary) **float64 { return &s.ElapsedDuration }},
	{"averageSpeed", "average_speed", func(s *Summary) **float64 { return &s.AverageSpeed }},
	{"maxSpeed", "max_speed", func(s *Summary) **float64 { return &s.MaxSpeed }},
	{"averageHR", "average_hr", func(s *Summary) **float64 { return &s.AverageHR }},
	{"maxHR", "max_hr", func(s *Summary) **float64 { return &s.MaxHR }},
	{"calories", "calories", func(s *Summary) **float64 { return &s.Calories }},
	{"bmrCalories", "bmr_calories", func(s *Summary) **float64 { return &s.BMRCalories }},
	{"elevationGain", "elevation_gain", func(s *Summary) **float64 { return &s.ElevationGain }},
	{"elevationLoss", "elevation_loss", func(s *Summary) **float64 { return &s.ElevationLoss }},
	{"avgPower", "avg_power", func(s *Summary) **float64 { return &s.AvgPower }},
	{"activityTrainingLoad", "activity_training_load", func(s *Summary) **float64 { return &s.ActivityTrainingLoad }},
	{"aerobicTrainingEffect", "aerobic_training_effect", func(s *Summary) **float64 { return &s.AerobicTrainingEffect }},
	{"anaerobicTrainingEffect", "anaerobic_training_effect", func(s *Summary) **float64 { return &s.AnaerobicTrainingEffect }},
}

var cyclingSpec = &variantSpec{
	variant: VariantCycling,
	alloc:   func(s *Summary) { s.Cycling = &CyclingMetrics{} },
	numeric: []numericField{
		{"averageBikingCadenceInRevPerMinute", "average_biking_cadence_rpm", func(s *Summary) **float64 { return &s.Cycling.AverageBikingCadenceRPM }},
		{"endLatitude", "end_latitude", func(s *Summary) **float64 { return &s.Cycling.EndLatitude }},
		{"endLongitude", "end_longitude", func(s *Summary) **float64 { return &s.Cycling.EndLongitude }},
	},
	flags: []flagField{
		{"excludeFromPowerCurveReports", "exclude_from_power_curve_reports", func(s *Summary) **bool { return &s.Cycling.ExcludeFromPowerCurveReports }},
	},
}

var runningSpec = &variantSpec{
	variant: VariantRunning,
	alloc:   func(s *Summary) { s.Running = &RunningMetrics{} },
	numeric: []numericField{
		{"averageRunningCadenceInStepsPerMinute", "average_running_cadence_spm", func(s *Summary) **float64 { return &s.Running.AverageRunningCadenceSPM }},
		{"avgGradeAdjustedSpeed", "avg_grade_adjusted_speed", func(s *Summary) **float64 { return &s.Running.AvgGradeAdjustedSpeed }},
		{"avgGroundContactTime", "avg_ground_contact_time", func(s *Summary) **float64 { return &s.Running.AvgGroundContactTime }},
		{"avgStrideLength", "avg_stride_length", func(s *Summary) **float64 { return &s.Running.AvgStrideLength }},
		{"avgVerticalOscillation", "avg_vertical_oscillation", func(s *Summary) **float64 { return &s.Running.AvgVerticalOscillation }},
		{"avgVerticalRatio", "avg_vertical_ratio", func(s *Summary) **float64 { return &s.Running.AvgVerticalRatio }},
	},
}

var swimmingSpec = &variantSpec{
	variant: VariantSwimming,
	alloc:   func(s *Summary) { s.Swimming = &SwimmingMetrics{} },
	numeric: []numericField{
		{"activeLengths", "active_lengths", func(s *Summary) **float64 { return &s.Swimming.ActiveLengths }},
		{"averageSwimCadenceInStrokesPerMinute", "average_swim_cadence_spm", func(s *Summary) **float64 { return &s.Swimming.AverageSwimCadenceSPM }},
		{"averageSwolf", "average_swolf", func(s *Summary) **float64 { return &s.Swimming.AverageSwolf }},
		{"avgStrokeDistance", "avg_stroke_distance", func(s *Summary) **float64 { return &s.Swimming.AvgStrokeDistance }},
		{"avgStrokes", "avg_strokes", func(s *Summary) **float64 { return &s.Swimming.AvgStrokes }},
		{"fastestSplit_100", "fastest_split_100", func(s *Summary) **float64 { return &s.Swimming.FastestSplit100 }},
	},
}

var genericSpec = &variantSpec{variant: VariantGeneric}

// typeKeyVariants maps normalized provider sport keys to variants. Keys not
// listed classify as generic.
var typeKeyVariants = map[string]*variantSpec{
	"cycling":         cyclingSpec,
	"biking":          cyclingSpec,
	"road_biking":     cyclingSpec,
	"virtual_ride":    cyclingSpec,
	"indoor_cycling":  cyclingSpec,
	"mountain_biking": cyclingSpec,
	"gravel_cycling":  cyclingSpec,
	"track_cycling":   cyclingSpec,

	"running":           runningSpec,
	"treadmill_running": runningSpec,
	"trail_running":     runningSpec,
	"track_running":     runningSpec,
	"indoor_running":    runningSpec,
	"virtual_run":       runningSpec,

	"swimming":            swimmingSpec,
	"lap_swimming":        swimmingSpec,
	"open_water_swimming": swimmingSpec,
}

func init() {
	for _, spec := range []*variantSpec{cyclingSpec, runningSpec, swimmingSpec, genericSpec} {
		keys := make([]string, 0, len(commonNumeric)+len(spec.numeric))
		for _, f := range commonNumeric {
			keys = append(keys, f.key)
		}
		for _, f := range spec.numeric {
			keys = append(keys, f.key)
		}
		spec.roundKeys = keys
	}
}

// specFor returns the field table for a variant.
func specFor(v Variant) *variantSpec {
	switch v {
	case VariantCycling:
		return cyclingSpec
	case VariantRunning:
		return runningSpec
	case VariantSwimming:
		return swimmingSpec
	default:
		return genericSpec
	}
}

// VariantOf returns the variant a normalized sport key classifies as.
func VariantOf(typeKey string) Variant {
	if spec, ok := typeKeyVariants[typeKey]; ok {
		return spec.variant
	}
	return VariantGeneric
}
