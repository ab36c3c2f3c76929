// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

// Package session establishes authenticated provider handles, reusing a
// cached session file when possible.
//
// Authenticate tries the cached session first. Any failure while reading,
// parsing or resuming the cache is logged and falls through to a fresh
// login. After a fresh login the new session is written back to the cache;
// a failed write is logged and otherwise ignored. Only a failed fresh login
// is returned as an error.
//
// The cache is a plain JSON file written with 0600 permissions through a
// temporary file and rename, so readers never see a half-written session.
package session
