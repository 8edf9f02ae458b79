// Package logger provides the process-wide structured logger used by scrub.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	defaultLogger *slog.Logger
	mu            sync.RWMutex
)

func init() {
	// Default to discarding debug logs
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Options configures the logger.
type Options struct {
	Debug  bool         // Enable debug level logging
	Quiet  bool         // Only show errors
	JSON   bool         // Output as JSON
	Output io.Writer    // Output destination (default: stderr)
	Logger *slog.Logger // Custom logger (overrides all other options)
}

// Level returns the minimum level implied by the options. Quiet wins over
// Debug.
func (o Options) Level() slog.Level {
	switch {
	case o.Quiet:
		return slog.LevelError
	case o.Debug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Init initializes the logger with the specified options.
func Init(opts Options) {
	SetLogger(New(opts))
}

// New builds a logger from opts without installing it.
func New(opts Options) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level()}

	if opts.JSON {
		return slog.New(slog.NewJSONHandler(output, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(output, handlerOpts))
}

// SetLogger replaces the process-wide logger. Embedders use it to route
// scrub's logs into their own handler.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Enabled reports whether messages at level would be emitted.
func Enabled(level slog.Level) bool {
	return current().Enabled(context.Background(), level)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { current().Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { current().Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { current().Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { current().Error(msg, args...) }

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return current().With(args...)
}

// DebugContext logs a debug message with context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	current().DebugContext(ctx, msg, args...)
}

// InfoContext logs an info message with context.
func InfoContext(ctx context.Context, msg string, args ...any) {
	current().InfoContext(ctx, msg, args...)
}

// WarnContext logs a warning message with context.
func WarnContext(ctx context.Context, msg string, args ...any) {
	current().WarnContext(ctx, msg, args...)
}

// ErrorContext logs an error message with context.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	current().ErrorContext(ctx, msg, args...)
}
