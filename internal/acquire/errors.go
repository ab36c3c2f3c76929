// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package acquire

import (
	"errors"
	"fmt"
)

// ErrInvalidPageSize indicates a page size outside (0, MaxPageSize].
var ErrInvalidPageSize = errors.New("page size out of range")

// ValidationError reports caller input rejected before any network call.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AuthenticationError reports a failed fresh login. Cached session
// failures never produce it.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// TransientProviderError reports a provider failure while paging. The
// fetch is not retried; Offset and PageSize identify the failed page.
type TransientProviderError struct {
	Offset   int
	PageSize int
	Err      error
}

func (e *TransientProviderError) Error() string {
	return fmt.Sprintf("provider request failed at offset %d (page size %d): %v", e.Offset, e.PageSize, e.Err)
}

func (e *TransientProviderError) Unwrap() error {
	return e.Err
}

// RecordError reports a single record that could not be classified.
// Index is the record's position in the fetched sequence.
type RecordError struct {
	Index      int
	ActivityID string
	Err        error
}

func (e *RecordError) Error() string {
	if e.ActivityID == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("record %d (activity %s): %v", e.Index, e.ActivityID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Partial data reasons.
const (
	ReasonUndated = "undated"
)

// PartialDataWarning marks a record returned with incomplete data.
type PartialDataWarning struct {
	ActivityID string `json:"activity_id"`
	TypeKey    string `json:"type_key"`
	Reason     string `json:"reason"`
}

func (w PartialDataWarning) String() string {
	return fmt.Sprintf("activity %s: %s", w.ActivityID, w.Reason)
}
