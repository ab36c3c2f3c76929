// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package acquire

import (
	"github.com/tomtom215/stridelog/internal/activity"
)

// detailNumericKeys are rounded at the top level and inside nested summaries.
var detailNumericKeys = []string{"distance", "duration", "elapsedDuration", "movingDuration"}

// detailSummaryKeys name the nested summary objects seen across provider versions.
var detailSummaryKeys = []string{"summaryDTO", "summary", "summaryDto"}

// NormalizeDetails rounds the known numeric fields of a detail payload.
// Non-object payloads are wrapped as {"activityId": id, "raw": payload}.
// Everything else is passed through; the payload may be partial.
func NormalizeDetails(activityID int64, payload interface{}) activity.Raw {
	obj, ok := asObject(payload)
	if !ok {
		return activity.Raw{"activityId": activityID, "raw": payload}
	}

	out := activity.Normalize(obj, detailNumericKeys)
	for _, key := range detailSummaryKeys {
		if nested, ok := asObject(out[key]); ok {
			out[key] = activity.Normalize(nested, detailNumericKeys)
		}
	}
	return out
}

func asObject(v interface{}) (activity.Raw, bool) {
	switch m := v.(type) {
	case activity.Raw:
		return m, m != nil
	case map[string]interface{}:
		return activity.Raw(m), m != nil
	default:
		return nil, false
	}
}
