// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"stridelog.yaml",
	"stridelog.yml",
	"/etc/stridelog/config.yaml",
	"/etc/stridelog/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultProviderURL is the provider API base used when none is configured.
const DefaultProviderURL = "https://connectapi.garmin.com"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			URL:                 DefaultProviderURL,
			Timeout:             30 * time.Second,
			MaxRetries:          5,
			RetryBaseDelay:      time.Second,
			RequestsPerSecond:   2,
			Burst:               1,
			BreakerEnabled:      true,
			BreakerMaxRequests:  3,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      2 * time.Minute,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
		},
		Session: SessionConfig{
			Enabled: true,
			File:    "session.json",
		},
		Fetch: FetchConfig{
			PageSize: 50,
			MaxPages: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Defaults returns a copy of the built-in configuration.
func Defaults() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processInvertedFields(k); err != nil {
		return nil, fmt.Errorf("failed to process inverted fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// invertedPaths maps temporary keys written by envTransformFunc for
// "*_DISABLED" variables to the boolean settings they negate.
var invertedPaths = map[string]string{
	"session.disabled": "session.enabled",
}

// processInvertedFields applies "*_DISABLED" environment switches. A truthy
// value turns the target setting off.
func processInvertedFields(k *koanf.Koanf) error {
	for from, to := range invertedPaths {
		val := k.Get(from)
		if val == nil {
			continue
		}
		k.Delete(from)

		s := strings.ToLower(strings.TrimSpace(fmt.Sprint(val)))
		switch s {
		case "1", "true", "yes", "on":
			if err := k.Set(to, false); err != nil {
				return fmt.Errorf("failed to set %s: %w", to, err)
			}
		case "", "0", "false", "no", "off":
		default:
			return fmt.Errorf("invalid boolean %q for %s", s, from)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Only mapped variables are read.
var envMappings = map[string]string{
	// Provider
	"provider_url":                   "provider.url",
	"garmin_user":                    "provider.username",
	"garmin_pwd":                     "provider.password",
	"provider_timeout":               "provider.timeout",
	"provider_max_retries":           "provider.max_retries",
	"provider_retry_base_delay":      "provider.retry_base_delay",
	"provider_requests_per_second":   "provider.requests_per_second",
	"provider_burst":                 "provider.burst",
	"provider_breaker_enabled":       "provider.breaker_enabled",
	"provider_breaker_max_requests":  "provider.breaker_max_requests",
	"provider_breaker_interval":      "provider.breaker_interval",
	"provider_breaker_timeout":       "provider.breaker_timeout",
	"provider_breaker_min_requests":  "provider.breaker_min_requests",
	"provider_breaker_failure_ratio": "provider.breaker_failure_ratio",

	// Session cache
	"stridelog_session_file":     "session.file",
	"stridelog_session_disabled": "session.disabled",

	// Paging
	"fetch_page_size": "fetch.page_size",
	"fetch_max_pages": "fetch.max_pages",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - GARMIN_USER -> provider.username
//   - STRIDELOG_SESSION_FILE -> session.file
//   - FETCH_PAGE_SIZE -> fetch.page_size
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	// Unmapped variables are skipped so unrelated environment does not leak in.
	return ""
}
