// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package acquire

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/stridelog/internal/activity"
)

// DateOf converts a date-like value to a calendar date. Accepted inputs are
// ISO strings (YYYY-MM-DD, or a longer timestamp whose first 10 characters
// are one), time.Time and activity.Date. A time.Time keeps its own
// location's calendar day.
func DateOf(v interface{}) (activity.Date, error) {
	switch d := v.(type) {
	case activity.Date:
		if d.IsZero() {
			return activity.Date{}, fmt.Errorf("%w: zero date", activity.ErrInvalidDate)
		}
		return d, nil
	case *activity.Date:
		if d == nil {
			return activity.Date{}, fmt.Errorf("%w: nil date", activity.ErrInvalidDate)
		}
		return DateOf(*d)
	case time.Time:
		if d.IsZero() {
			return activity.Date{}, fmt.Errorf("%w: zero time", activity.ErrInvalidDate)
		}
		return activity.DateOf(d), nil
	case *time.Time:
		if d == nil {
			return activity.Date{}, fmt.Errorf("%w: nil time", activity.ErrInvalidDate)
		}
		return DateOf(*d)
	case string:
		s := strings.TrimSpace(d)
		if len(s) > 10 {
			s = s[:10]
		}
		return activity.ParseDate(s)
	case nil:
		return activity.Date{}, fmt.Errorf("%w: missing", activity.ErrInvalidDate)
	default:
		return activity.Date{}, fmt.Errorf("%w: unsupported type %T", activity.ErrInvalidDate, v)
	}
}

// parseRange converts and validates a caller range.
func parseRange(start, end interface{}) (activity.Date, activity.Date, error) {
	s, err := DateOf(start)
	if err != nil {
		return activity.Date{}, activity.Date{}, &ValidationError{Field: "start", Err: err}
	}
	e, err := DateOf(end)
	if err != nil {
		return activity.Date{}, activity.Date{}, &ValidationError{Field: "end", Err: err}
	}
	if err := activity.ValidateRange(s, e); err != nil {
		return activity.Date{}, activity.Date{}, &ValidationError{Field: "range", Err: err}
	}
	return s, e, nil
}
