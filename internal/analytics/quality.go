// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package analytics

import (
	"github.com/tomtom215/stridelog/internal/acquire"
	"github.com/tomtom215/stridelog/internal/activity"
)

// Quality issue kinds.
const (
	IssueMissingDistance    = "missing_distance"
	IssueMissingDuration    = "missing_duration"
	IssueZeroDistanceMoving = "zero_distance_nonzero_duration"
)

// QualityIssue is one finding about one activity.
type QualityIssue struct {
	ActivityID int64  `json:"activity_id"`
	Issue      string `json:"issue"`
}

// QualitySummary counts findings.
type QualitySummary struct {
	Count           int `json:"count"`
	MissingDistance int `json:"missing_distance"`
	MissingDuration int `json:"missing_duration"`
	UnknownDay      int `json:"unknown_day"`
	UndatedAtFetch  int `json:"undated_at_fetch"`
	IssuesCount     int `json:"issues_count"`
}

// QualityReportResult is the output of QualityReport.
type QualityReportResult struct {
	Summary  QualitySummary               `json:"summary"`
	Issues   []QualityIssue               `json:"issues"`
	Warnings []acquire.PartialDataWarning `json:"warnings"`
}

// QualityReport scans summaries for missing or suspicious values and folds
// in the PartialDataWarnings of the fetch that produced them. Unknown days
// are counted but not listed per activity.
func QualityReport(summaries []activity.Summary, warnings []acquire.PartialDataWarning) QualityReportResult {
	out := QualityReportResult{
		Issues:   []QualityIssue{},
		Warnings: append([]acquire.PartialDataWarning{}, warnings...),
	}

	out.Summary.Count = len(summaries)
	for i := range summaries {
		s := &summaries[i]

		if DayKey(s) == UnknownDay {
			out.Summary.UnknownDay++
		}
		if s.Distance == nil {
			out.Summary.MissingDistance++
			out.Issues = append(out.Issues, QualityIssue{ActivityID: s.ActivityID, Issue: IssueMissingDistance})
		}
		if s.Duration == nil {
			out.Summary.MissingDuration++
			out.Issues = append(out.Issues, QualityIssue{ActivityID: s.ActivityID, Issue: IssueMissingDuration})
		}
		if s.Distance != nil && s.Duration != nil && *s.Distance == 0 && *s.Duration > 0 {
			out.Issues = append(out.Issues, QualityIssue{ActivityID: s.ActivityID, Issue: IssueZeroDistanceMoving})
		}
	}

	for _, w := range warnings {
		if w.Reason == acquire.ReasonUndated {
			out.Summary.UndatedAtFetch++
		}
	}
	out.Summary.IssuesCount = len(out.Issues)
	return out
}
