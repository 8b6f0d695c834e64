// Package logging wraps slog.Logger with slotkit-specific context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with slotkit-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// Wrap adapts an existing slog.Logger. A nil logger yields NoopLogger.
func Wrap(l *slog.Logger) *Logger {
	if l == nil {
		return NoopLogger()
	}
	return &Logger{Logger: l}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

var noop = &Logger{
	Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})),
}

// NoopLogger returns a Logger that discards all log output.
func NoopLogger() *Logger {
	return noop
}

// WithStrategy adds a strategy field to the logger.
func (l *Logger) WithStrategy(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", name),
	}
}

// LogReserve logs a capacity change of a buffer.
func (l *Logger) LogReserve(ctx context.Context, from, to int, bytes uintptr, err error) {
	if err != nil {
		if l.Enabled(ctx, slog.LevelWarn) {
			l.WarnContext(ctx, "reserve failed",
				"capacity", from,
				"requested", to,
				"bytes", bytes,
				"error", err,
			)
		}
		return
	}
	if l.Enabled(ctx, slog.LevelDebug) {
		l.DebugContext(ctx, "reserve completed",
			"from", from,
			"to", to,
			"bytes", bytes,
		)
	}
}

// LogPromotion logs the one-way move of a hybrid buffer from inline to heap storage.
func (l *Logger) LogPromotion(ctx context.Context, inline, capacity, length int) {
	if l.Enabled(ctx, slog.LevelDebug) {
		l.DebugContext(ctx, "buffer promoted to heap",
			"inline", inline,
			"capacity", capacity,
			"length", length,
		)
	}
}

// LogRelease logs the release of heap storage.
func (l *Logger) LogRelease(ctx context.Context, from, to int) {
	if l.Enabled(ctx, slog.LevelDebug) {
		l.DebugContext(ctx, "storage released",
			"from", from,
			"to", to,
		)
	}
}

// LogMerge logs a sorted bulk insertion.
func (l *Logger) LogMerge(ctx context.Context, input, runs, duplicates int, err error) {
	if err != nil {
		if l.Enabled(ctx, slog.LevelWarn) {
			l.WarnContext(ctx, "merge failed",
				"input", input,
				"error", err,
			)
		}
		return
	}
	if l.Enabled(ctx, slog.LevelDebug) {
		l.DebugContext(ctx, "merge completed",
			"input", input,
			"runs", runs,
			"duplicates", duplicates,
		)
	}
}
