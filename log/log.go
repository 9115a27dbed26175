// Package log provides logging for getdocker. The relevant log/slog types are
// shadowed here to avoid having to import slog directly elsewhere in the
// codebase and to make it easy to swap the backend.
package log

import (
	"io"
	"log/slog"
	"sync/atomic"
)

type Attr = slog.Attr
type Level = slog.Level
type Leveler = slog.Leveler
type Logger = slog.Logger
type Value = slog.Value

const (
	LevelDebug = slog.LevelDebug // LevelDebug low level messages such as executed commands and their output
	LevelInfo  = slog.LevelInfo  // LevelInfo general informational messages about installation progress
	LevelWarn  = slog.LevelWarn  // LevelWarn warnings, such as a forced distribution fallback
	LevelError = slog.LevelError // LevelError failure messages such as stderr from commands
)

var (
	// These are slog.Attr functions (log.Bool("key", true), etc)
	String   = slog.String
	Int64    = slog.Int64
	Int      = slog.Int
	Bool     = slog.Bool
	Duration = slog.Duration
	Any      = slog.Any
	AnyValue = slog.AnyValue

	defaultLogger atomic.Value
)

func init() {
	// Default logging handler is a no-op handler that will output nothing.
	defaultLogger.Store(slog.New(NopHandler))
}

// Default returns the default Logger.
func Default() *Logger { return defaultLogger.Load().(*Logger) } //nolint:forcetypeassert

// SetLogger sets the logger used by getdocker.
func SetLogger(l *Logger) { defaultLogger.Store(l) }

// New returns a Logger logging to the given writer at the given level.
func New(out io.Writer, lvl Level) *Logger {
	slogOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, attr Attr) Attr {
			if attr.Key == slog.TimeKey {
				// Command output timestamps are noise for an installer run.
				return slog.Attr{}
			}
			return attr
		},
	}
	return slog.New(slog.NewTextHandler(out, slogOpts))
}
