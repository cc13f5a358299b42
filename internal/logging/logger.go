// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

// Package logging provides the gateway's zerolog-based logging facade.
//
// A single global logger is configured once at startup and used
// everywhere. JSON output is the default; console output is available
// for local development via LOG_FORMAT=console.
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Upstream retry")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// chain is silently dropped by zerolog.
//
// The package also carries request and correlation IDs through
// context.Context (see Ctx) and bridges to log/slog for the supervisor
// tree (see NewSlogLogger).
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration, populated from LOG_LEVEL,
// LOG_FORMAT and LOG_CALLER via the config package.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string

	// Format is "json" (default) or "console".
	Format string

	// Caller adds file:line to every event. Off by default.
	Caller bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the production defaults: info level, JSON to stderr.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: os.Stderr}
}

// global holds the configured logger. Read lock-free on every event.
var global atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // logging must work before main() calls Init
func init() {
	Init(DefaultConfig())
}

// Init configures the global logger. Safe to call again to reconfigure.
func Init(cfg Config) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	lc := zerolog.New(out).With().Timestamp()
	if cfg.Caller {
		lc = lc.Caller()
	}
	logger := lc.Logger()
	global.Store(&logger)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
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

// Logger returns the global logger for direct zerolog access.
func Logger() zerolog.Logger {
	return *global.Load()
}

// With opens a child logger context with extra default fields.
//
//	proxyLogger := logging.With().Str("component", "image-proxy").Logger()
func With() zerolog.Context {
	return global.Load().With()
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	return global.Load().Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	return global.Load().Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	return global.Load().Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	return global.Load().Error()
}

// Fatal starts a fatal-level event. os.Exit(1) follows the Msg call.
func Fatal() *zerolog.Event {
	return global.Load().Fatal()
}

// NewTestLogger returns an independent logger writing to w, for tests
// that assert on log output without touching the global logger.
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
