// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML file (stridelog.yaml or CONFIG_PATH)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	client := provider.NewClient(&cfg.Provider)
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Provider ProviderConfig `koanf:"provider"`
	Session  SessionConfig  `koanf:"session"`
	Fetch    FetchConfig    `koanf:"fetch"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ProviderConfig holds connection settings for the activity provider API.
//
// Environment Variables:
//   - PROVIDER_URL: Base URL of the provider API
//   - GARMIN_USER / GARMIN_PWD: Account credentials for fresh login
//   - PROVIDER_TIMEOUT: Per-request HTTP timeout (default: 30s)
//   - PROVIDER_MAX_RETRIES: Retries on HTTP 429 (default: 5)
//   - PROVIDER_RETRY_BASE_DELAY: First backoff delay, doubled per retry (default: 1s)
//   - PROVIDER_REQUESTS_PER_SECOND: Client-side pacing, 0 disables (default: 2)
//   - PROVIDER_BURST: Pacing burst size (default: 1)
//   - PROVIDER_BREAKER_ENABLED: Wrap listing and details in a circuit breaker (default: true)
type ProviderConfig struct {
	URL      string `koanf:"url" validate:"required,http_url"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	Timeout        time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxRetries     int           `koanf:"max_retries" validate:"gte=0,lte=10"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay" validate:"gte=0"`

	// RequestsPerSecond paces outgoing requests. Zero means unlimited.
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`
	Burst             int     `koanf:"burst" validate:"gte=1"`

	BreakerEnabled bool `koanf:"breaker_enabled"`

	// BreakerMaxRequests is the number of trial requests allowed while half-open.
	BreakerMaxRequests uint32 `koanf:"breaker_max_requests" validate:"gte=1"`

	// BreakerInterval resets the failure counts while closed.
	BreakerInterval time.Duration `koanf:"breaker_interval" validate:"gte=0"`

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration `koanf:"breaker_timeout" validate:"gt=0"`

	// The breaker opens once BreakerMinRequests have been observed and the
	// failure ratio reaches BreakerFailureRatio.
	BreakerMinRequests  uint32  `koanf:"breaker_min_requests" validate:"gte=1"`
	BreakerFailureRatio float64 `koanf:"breaker_failure_ratio" validate:"gt=0,lte=1"`
}

// HasCredentials reports whether both username and password are set.
func (p *ProviderConfig) HasCredentials() bool {
	return p.Username != "" && p.Password != ""
}

// SessionConfig controls the cached session file.
//
// Environment Variables:
//   - STRIDELOG_SESSION_FILE: Path of the cached session (default: session.json)
//   - STRIDELOG_SESSION_DISABLED: true disables reading and writing the cache
type SessionConfig struct {
	Enabled bool   `koanf:"enabled"`
	File    string `koanf:"file"`
}

// Path returns the session file path, or nil when caching is disabled.
func (s SessionConfig) Path() *string {
	if !s.Enabled || s.File == "" {
		return nil
	}
	p := s.File
	return &p
}

// FetchConfig holds paging defaults for range fetches.
//
// Environment Variables:
//   - FETCH_PAGE_SIZE: Records per page, 1..200 (default: 50)
//   - FETCH_MAX_PAGES: Page cap, 0 means unlimited (default: 0)
type FetchConfig struct {
	PageSize int `koanf:"page_size" validate:"gt=0,lte=200"`
	MaxPages int `koanf:"max_pages" validate:"gte=0"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration using the layered koanf loader.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
