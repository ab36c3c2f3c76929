// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

/*
Package activity turns loosely-typed provider activity records into a stable,
strongly-typed model.

The provider returns activity summaries as open JSON objects whose keys vary by
sport and by API version. This package owns everything that happens to a single
record after it has been retrieved:

  - Raw: the untyped record as decoded from the provider (numbers kept as json.Number)
  - Temporal extraction: LocalDate and BeginUTC derive a calendar date and a UTC
    instant from the inconsistent timestamp encodings used by the provider
  - Classification: Classify resolves the sport key and builds a Summary with the
    variant chosen from a fixed lookup table (Cycling, Running, Swimming, Generic)
  - Normalization: every allow-listed numeric field is rounded to 2 decimals;
    booleans are never rounded; unknown fields survive verbatim in Summary.Raw
  - Filtering: FilterRaw and FilterSummaries restrict records to a set of sport keys

Absent Values:

Optional fields are pointers. A nil pointer means the provider did not send the
field, or sent something that could not be coerced to the field's type. Zero is
never used as a stand-in for "missing".

Variants:

Summary is a closed tagged variant. Summary.Variant names the variant and at most
one of Summary.Cycling, Summary.Running or Summary.Swimming is non-nil. Generic
summaries carry only the common fields.

Example:

	sum, err := activity.Classify(raw)
	if err != nil {
	    // raw had no usable activityId
	}
	if sum.Variant == activity.VariantRunning {
	    fmt.Println(*sum.Running.AverageRunningCadenceSPM)
	}
	out := sum.Public(false) // snake_case projection without the raw payload
*/
package activity
