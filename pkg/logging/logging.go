/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package logging configures the process-wide slog logger.
//
// Servers log JSON with module and version attributes; the CLI logs plain
// text to stderr. Both honor the LOG_LEVEL environment variable (debug,
// info, warn, error).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel names the environment variable holding the log level.
const EnvLogLevel = "LOG_LEVEL"

// ParseLevel converts a level name to a slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromEnv returns the level configured in LOG_LEVEL, or info.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(EnvLogLevel))
}

// NewStructuredLogger returns a JSON logger tagged with module and version.
func NewStructuredLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: level == slog.LevelDebug,
		Level:     level,
	})
	return slog.New(h).With("module", module, "version", version)
}

// NewCLILogger returns a text logger without timestamps.
func NewCLILogger(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(h)
}

// SetDefaultStructuredLogger installs a JSON logger on stderr as the
// default, at the level from LOG_LEVEL.
func SetDefaultStructuredLogger(module, version string) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, LevelFromEnv()))
}

// SetDefaultStructuredLoggerWithLevel is SetDefaultStructuredLogger with an
// explicit level name.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, ParseLevel(level)))
}

// SetDefaultCLILogger installs a text logger on stderr as the default.
func SetDefaultCLILogger(level slog.Level) {
	slog.SetDefault(NewCLILogger(os.Stderr, level))
}
