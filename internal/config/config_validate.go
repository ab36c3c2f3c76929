// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/stridelog/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateProvider(); err != nil {
		return err
	}

	if err := c.validateSession(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateProvider performs cross-field checks the struct tags cannot express.
func (c *Config) validateProvider() error {
	if err := validateHTTPURL(c.Provider.URL, "provider.url"); err != nil {
		return err
	}

	p := c.Provider
	if (p.Username == "") != (p.Password == "") {
		return fmt.Errorf("provider.username and provider.password (GARMIN_USER, GARMIN_PWD) must be set together")
	}
	if p.Password != "" && isPlaceholder(p.Password) {
		return fmt.Errorf("provider.password is a placeholder value; set GARMIN_PWD to the real password")
	}
	return nil
}

// validateSession validates the session cache settings.
func (c *Config) validateSession() error {
	if !c.Session.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Session.File) == "" {
		return fmt.Errorf("session.file must be set when session caching is enabled (or set STRIDELOG_SESSION_DISABLED=true)")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderValues are example-config values users forget to replace.
// Only whole values match, so real passwords containing these words pass.
var placeholderValues = map[string]bool{
	"REPLACE":         true,
	"REPLACE_ME":      true,
	"CHANGEME":        true,
	"CHANGE_ME":       true,
	"YOUR_PASSWORD":   true,
	"<YOUR_PASSWORD>": true,
	"PLACEHOLDER":     true,
}

// isPlaceholder reports whether the whole trimmed value is a known placeholder.
func isPlaceholder(value string) bool {
	return placeholderValues[strings.ToUpper(strings.TrimSpace(value))]
}
