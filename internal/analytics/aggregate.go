// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package analytics

import (
	"sort"
	"strings"

	"github.com/tomtom215/stridelog/internal/activity"
)

// UnknownDay labels activities without a begin timestamp.
const UnknownDay = "unknown"

// DayTotals aggregates the activities of one UTC calendar day.
type DayTotals struct {
	Date                 string  `json:"date"`
	Count                int     `json:"count"`
	Distance             float64 `json:"distance"`
	Duration             float64 `json:"duration"`
	Calories             float64 `json:"calories"`
	ActivityTrainingLoad float64 `json:"activity_training_load"`
}

// DailyReport is the result of AggregateByDay.
type DailyReport struct {
	Days   []DayTotals `json:"days"`
	Totals DayTotals   `json:"totals"`
}

// TypeTotals aggregates the activities of one sport key.
type TypeTotals struct {
	TypeKey      string  `json:"type_key"`
	Count        int     `json:"count"`
	Distance     float64 `json:"distance"`
	Duration     float64 `json:"duration"`
	TrainingLoad float64 `json:"training_load"`
}

// TypeReport is the result of AggregateByType.
type TypeReport struct {
	Types []TypeTotals `json:"types"`
}

// DayKey returns the UTC date of the begin timestamp, or UnknownDay. A zero
// timestamp counts as missing.
func DayKey(s *activity.Summary) string {
	t, ok := s.BeginUTC()
	if !ok || t.UnixMilli() == 0 {
		return UnknownDay
	}
	return activity.DateOf(t).String()
}

// AggregateByDay groups summaries by the UTC date of their begin timestamp.
// Days are sorted ascending; UnknownDay sorts after every ISO date.
func AggregateByDay(summaries []activity.Summary) DailyReport {
	byDay := make(map[string]*DayTotals)
	for i := range summaries {
		s := &summaries[i]
		key := DayKey(s)
		d, ok := byDay[key]
		if !ok {
			d = &DayTotals{Date: key}
			byDay[key] = d
		}
		d.Count++
		d.Distance += value(s.Distance)
		d.Duration += value(s.Duration)
		d.Calories += value(s.Calories)
		d.ActivityTrainingLoad += value(s.ActivityTrainingLoad)
	}

	report := DailyReport{Days: make([]DayTotals, 0, len(byDay))}
	for _, d := range byDay {
		report.Days = append(report.Days, *d)
	}
	sort.Slice(report.Days, func(i, j int) bool {
		return report.Days[i].Date < report.Days[j].Date
	})

	for _, d := range report.Days {
		report.Totals.Count += d.Count
		report.Totals.Distance += d.Distance
		report.Totals.Duration += d.Duration
		report.Totals.Calories += d.Calories
		report.Totals.ActivityTrainingLoad += d.ActivityTrainingLoad
	}
	return report
}

// AggregateByType groups summaries by sport key, sorted by key.
func AggregateByType(summaries []activity.Summary) TypeReport {
	byType := make(map[string]*TypeTotals)
	for i := range summaries {
		s := &summaries[i]
		key := strings.ToLower(strings.TrimSpace(s.TypeKey))
		if key == "" {
			key = activity.UnknownTypeKey
		}
		tt, ok := byType[key]
		if !ok {
			tt = &TypeTotals{TypeKey: key}
			byType[key] = tt
		}
		tt.Count++
		tt.Distance += value(s.Distance)
		tt.Duration += value(s.Duration)
		tt.TrainingLoad += value(s.ActivityTrainingLoad)
	}

	report := TypeReport{Types: make([]TypeTotals, 0, len(byType))}
	for _, tt := range byType {
		report.Types = append(report.Types, *tt)
	}
	sort.Slice(report.Types, func(i, j int) bool {
		return report.Types[i].TypeKey < report.Types[j].TypeKey
	})
	return report
}

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
