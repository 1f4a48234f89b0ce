package mmapffi

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with mmap-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogMap logs a map operation.
func (l *Logger) LogMap(ctx context.Context, mode AccessMode, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "map failed",
			"mode", mode.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "map completed",
			"mode", mode.String(),
			"bytes", bytes,
		)
	}
}

// LogAdvise logs an advise operation.
func (l *Logger) LogAdvise(ctx context.Context, advice Advice, err error) {
	if err != nil {
		l.ErrorContext(ctx, "advise failed",
			"advice", advice.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "advise completed",
			"advice", advice.String(),
		)
	}
}

// LogClose logs a close operation.
func (l *Logger) LogClose(ctx context.Context, err error) {
	if err != nil {
		l.ErrorContext(ctx, "close failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "close completed")
	}
}
