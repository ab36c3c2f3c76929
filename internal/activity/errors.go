// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package activity

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingActivityID indicates a record without an activityId field.
	ErrMissingActivityID = errors.New("activityId is missing")

	// ErrInvalidActivityID indicates an activityId that is not an integer.
	ErrInvalidActivityID = errors.New("activityId is not an integer")

	// ErrInvalidRange indicates a date range whose start is after its end.
	ErrInvalidRange = errors.New("start date is after end date")

	// ErrInvalidDate indicates a date value that could not be interpreted.
	ErrInvalidDate = errors.New("invalid date")
)

// ValidationError reports caller-supplied or provider-supplied input that cannot
// be accepted. It is never retried.
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field string, value interface{}, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("validation failed for %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("validation failed for %s (%v): %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
