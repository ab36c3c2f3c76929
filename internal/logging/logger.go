// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config controls how Init builds the process logger.
type Config struct {
	// Level is trace, debug, info, warn, error or disabled. Unknown values
	// fall back to info.
	Level string

	// Format is json (default) or console.
	Format string

	// Caller adds file:line to each line.
	Caller bool

	// Timestamp adds an RFC 3339 time field.
	Timestamp bool

	// Output defaults to os.Stderr. stdout carries the CLI's JSON results
	// and must stay clean.
	Output io.Writer
}

// DefaultConfig is json at info level on stderr, with timestamps.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var (
	mu      sync.RWMutex
	current zerolog.Logger
)

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	current = build(DefaultConfig())
}

// Init replaces the process logger. Loggers already derived with
// WithComponent keep writing to the previous output.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	current = l
	mu.Unlock()
}

func build(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	zc := zerolog.New(out).With()
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return zc.Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns a copy of the process logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// GetLevel reports the active minimum level.
func GetLevel() zerolog.Level {
	return zerolog.GlobalLevel()
}

// Debug starts a debug event on the process logger.
func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

// Info starts an info event on the process logger.
//
//	logging.Info().Str("range", "2025-06-01..2025-06-30").Msg("Fetching activities")
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn starts a warn event on the process logger.
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error starts an error event on the process logger.
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

// Fatal logs and then calls os.Exit(1).
func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}

// Err starts an error event carrying err, or an info event when err is nil.
func Err(err error) *zerolog.Event {
	l := Logger()
	return l.Err(err)
}
