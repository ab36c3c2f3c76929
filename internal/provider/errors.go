// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package provider

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized indicates the provider rejected credentials or a session token.
	ErrUnauthorized = errors.New("provider rejected authentication")

	// ErrRateLimited indicates HTTP 429 persisted after all retries.
	ErrRateLimited = errors.New("provider rate limit exceeded")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("provider resource not found")

	// ErrInvalidSession indicates a session blob without a usable access token.
	ErrInvalidSession = errors.New("session has no access token")

	// ErrSessionExpired indicates a cached session whose token has expired.
	ErrSessionExpired = errors.New("session token expired")
)

// maxErrorBodySize limits the response body read for error reporting.
const maxErrorBodySize = 64 * 1024

// StatusError reports a non-success HTTP status from the provider.
// It unwraps to ErrUnauthorized, ErrNotFound or ErrRateLimited where the
// status maps to one of them.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s request failed with status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Unwrap returns the sentinel matching the status code, if any.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return nil
	}
}

// Temporary reports whether retrying the whole operation later may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
