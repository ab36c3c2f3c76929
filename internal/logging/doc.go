// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

// Package logging provides centralized zerolog-based structured logging.
//
// A single global logger is configured once at startup with Init and used
// everywhere through the package-level helpers. Output goes to stderr so the
// CLI can keep stdout for its JSON results.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("range", r).Msg("Fetching activities")
//	logging.Err(err).Msg("Login failed")
//
// # Correlation IDs
//
// Each caller-facing operation runs under a short correlation ID carried in
// the context. Ctx attaches it to every line:
//
//	ctx = logging.EnsureCorrelationID(ctx)
//	logging.Ctx(ctx).Debug().Int("offset", off).Msg("Fetched page")
//
// # Secrets
//
// Credentials and session tokens are never logged raw. Use SanitizeToken,
// SanitizeUsername or SanitizeValue before attaching them to an event.
package logging
