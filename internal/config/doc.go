// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

/*
Package config provides layered configuration for stridelog.

# Configuration Sources

Settings are loaded with koanf v2 in increasing priority:
  - Built-in defaults (defaultConfig)
  - An optional YAML file: $CONFIG_PATH, ./stridelog.yaml, /etc/stridelog/config.yaml
  - Environment variables listed in envMappings

Only mapped environment variables are read, so unrelated variables in the
process environment never leak into the configuration.

# Environment Variables

Provider (ProviderConfig):
  - PROVIDER_URL: API base URL (default: https://connectapi.garmin.com)
  - GARMIN_USER, GARMIN_PWD: credentials for fresh login
  - PROVIDER_TIMEOUT, PROVIDER_MAX_RETRIES, PROVIDER_RETRY_BASE_DELAY
  - PROVIDER_REQUESTS_PER_SECOND, PROVIDER_BURST
  - PROVIDER_BREAKER_ENABLED and PROVIDER_BREAKER_* tuning

Session cache (SessionConfig):
  - STRIDELOG_SESSION_FILE: cached session path (default: session.json)
  - STRIDELOG_SESSION_DISABLED: true disables the cache entirely

Paging (FetchConfig):
  - FETCH_PAGE_SIZE: 1..200 (default: 50)
  - FETCH_MAX_PAGES: 0 means unlimited (default: 0)

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Validate runs struct-tag validation through internal/validation and then
cross-field checks: credentials must be set together, the password must not
be a placeholder, and an enabled session cache needs a file path.

# Example

	cfg, err := config.Load()
	if err != nil {
	    return fmt.Errorf("load config: %w", err)
	}
	if path := cfg.Session.Path(); path != nil {
	    // session caching enabled
	}
*/
package config
