// Package logger provides structured logging for the website.
package logger

import (
	"context"
)

// Logger is the structured logging contract used across the site.
// All log methods accept a message followed by key-value pairs.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs
	Debug(msg string, args ...any)

	// Info logs an info-level message with optional key-value pairs
	Info(msg string, args ...any)

	// Warn logs a warning-level message with optional key-value pairs
	Warn(msg string, args ...any)

	// Error logs an error-level message with optional key-value pairs
	Error(msg string, args ...any)

	// With creates a child logger with additional key-value pairs that will be
	// included in all subsequent log entries
	With(args ...any) Logger

	// WithContext creates a child logger that extracts request ID from context
	WithContext(ctx context.Context) Logger
}

// Nop returns a logger that discards everything. Useful in tests.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                  {}
func (nopLogger) Info(string, ...any)                   {}
func (nopLogger) Warn(string, ...any)                   {}
func (nopLogger) Error(string, ...any)                  {}
func (l nopLogger) With(...any) Logger                  { return l }
func (l nopLogger) WithContext(context.Context) Logger  { return l }
