// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package acquire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/stridelog/internal/activity"
)

func TestDateOf(t *testing.T) {
	want := activity.Date{Year: 2025, Month: time.June, Day: 15}
	tm := time.Date(2025, 6, 15, 22, 30, 0, 0, time.FixedZone("EDT", -4*3600))

	tests := []struct {
		name    string
		in      interface{}
		wantErr bool
	}{
		{"iso string", "2025-06-15", false},
		{"padded string", " 2025-06-15 ", false},
		{"timestamp string", "2025-06-15T08:00:00Z", false},
		{"time keeps its own calendar day", tm, false},
		{"time pointer", &tm, false},
		{"date value", want, false},
		{"date pointer", &want, false},
		{"bad string", "15/06/2025", true},
		{"zero date", activity.Date{}, true},
		{"zero time", time.Time{}, true},
		{"nil", nil, true},
		{"int", 20250615, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateOf(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, activity.ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}
