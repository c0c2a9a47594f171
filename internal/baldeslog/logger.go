// Package baldeslog provides the structured logging used across the engine.
//
// BALDES is a library embedded inside a column-generation solver, not a
// standalone service: it never owns a log file, never rotates logs, and
// never calls os.Exit. It only ever writes to a *slog.Logger the host
// application configures (or, if none is configured, a quiet default that
// drops everything below Warn so an embedding solver isn't spammed with
// per-label chatter by default).
package baldeslog

import (
	"io"
	"log/slog"
	"os"
)

// Log is the package-level logger used by every engine component.
// Replace it with SetLogger before calling Engine.Solve if the host
// application wants its own handler (JSON, text, a test sink, ...).
var Log *slog.Logger

func init() {
	Log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// Config mirrors the handler knobs a host application usually wants to
// control: verbosity and wire format. There is deliberately no Output/
// FilePath/rotation knob here — the engine does not write files.
type Config struct {
	// Level is one of "debug", "info", "warn", "error". Defaults to "warn".
	Level string
	// Format is "json" or "text". Defaults to "json".
	Format string
	// Writer overrides the destination. Defaults to os.Stderr.
	Writer io.Writer
}

// Init configures the package logger from Config. Safe to call before
// NewEngine; if never called, Log defaults to a quiet stderr JSON logger.
func Init(cfg Config) {
	var lvl slog.Level
	switch cfg.Level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	Log = slog.New(handler)
}

// SetLogger lets an embedding application hand BALDES its own *slog.Logger
// (e.g. one already carrying service-wide attributes).
func SetLogger(l *slog.Logger) {
	if l != nil {
		Log = l
	}
}

// WithCall returns a logger scoped to one pricing call, tagging every
// subsequent record with the call's correlation id.
func WithCall(callID string) *slog.Logger {
	return Log.With("call_id", callID)
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { Log.Debug(msg, args...) }

// Info logs at info level. Used for setup, fixing and solve summaries and
// ng-memory growth.
func Info(msg string, args ...any) { Log.Info(msg, args...) }

// Warn logs at warn level. Used for Rollback and solve timeouts.
func Warn(msg string, args ...any) { Log.Warn(msg, args...) }

// Error logs at error level. Used for structural Error-status conditions.
func Error(msg string, args ...any) { Log.Error(msg, args...) }
