// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

// Package main is the stridelog command line tool.
//
// It fetches activities from the provider for a date range and prints them,
// or reports built from them, as JSON on stdout. Logs go to stderr.
//
// # Commands
//
//	stridelog activities -start 2025-06-01 -end 2025-06-30 [-types running,cycling] [-include-raw] [-max-pages -1]
//	stridelog details -id 123456789
//	stridelog by-day -start 2025-06-01 -end 2025-06-30 [-types running]
//	stridelog by-type -start 2025-06-01 -end 2025-06-30
//	stridelog quality -start 2025-06-01 -end 2025-06-30 [-types running]
//
// # Configuration
//
// Configuration is loaded via Koanf v2 (defaults, then stridelog.yaml or
// CONFIG_PATH, then environment):
//   - GARMIN_USER / GARMIN_PWD: Credentials for fresh login
//   - STRIDELOG_SESSION_FILE: Cached session path (default: session.json)
//   - STRIDELOG_SESSION_DISABLED=true: Never read or write the cache
//   - FETCH_PAGE_SIZE / FETCH_MAX_PAGES: Paging defaults
//   - LOG_LEVEL / LOG_FORMAT: Logging
//
// # Exit Codes
//
//	0  success
//	1  runtime failure (authentication, provider, cancellation)
//	2  usage or validation error
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/stridelog/internal/acquire"
	"github.com/tomtom215/stridelog/internal/config"
	"github.com/tomtom215/stridelog/internal/logging"
	"github.com/tomtom215/stridelog/internal/provider"
	"github.com/tomtom215/stridelog/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Debug().
		Str("provider_url", cfg.Provider.URL).
		Str("username", logging.SanitizeValue("username", cfg.Provider.Username)).
		Bool("session_cache", cfg.Session.Path() != nil).
		Int("page_size", cfg.Fetch.PageSize).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := provider.NewClient(&cfg.Provider)
	manager := session.NewManager(session.ClientAuthenticator{Client: client}, session.OptionsFromConfig(cfg))
	svc := acquire.NewService(acquire.AuthenticatorFunc(func(ctx context.Context) (acquire.Provider, error) {
		return manager.Authenticate(ctx)
	}), &cfg.Fetch)

	err = run(ctx, svc, os.Args[1:], os.Stdout)
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var ve *acquire.ValidationError
	if errors.Is(err, errUsage) || errors.As(err, &ve) {
		logging.Error().Err(err).Msg("Invalid invocation")
		return 2
	}
	logging.Error().Err(err).Msg("Command failed")
	return 1
}
