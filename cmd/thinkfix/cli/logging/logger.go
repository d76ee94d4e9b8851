// Package logging provides structured diagnostic logging for thinkfix using slog.
//
// The log is purely observational: it is append-only, written to a fixed
// path under ~/.config/thinkfix/logs, and never read back. It is disabled
// unless the THINKFIX_DEBUG or THINKFIX_LOG_LEVEL environment variable is
// set, or a log level is configured in settings.
//
// Usage:
//
//	logging.Init()
//	defer logging.Close()
//
//	ctx = logging.WithComponent(ctx, "hooks")
//	logging.Info(ctx, "hook invoked", slog.String("hook", hookName))
package logging

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/thinkfix/cli/cmd/thinkfix/cli/paths"
)

// Environment variables controlling the diagnostic log.
const (
	// DebugEnvVar enables the log at DEBUG level when set to any non-empty value.
	DebugEnvVar = "THINKFIX_DEBUG"

	// LogLevelEnvVar sets an explicit log level, overriding settings.
	LogLevelEnvVar = "THINKFIX_LOG_LEVEL"
)

var (
	// logger is the package-level logger instance
	logger *slog.Logger

	// logFile holds the current log file handle for cleanup
	logFile *os.File

	// logBufWriter wraps logFile with buffered I/O for performance
	logBufWriter *bufio.Writer

	// mu protects logger, logFile, and logBufWriter
	mu sync.RWMutex

	// logLevelGetter is an optional callback to get log level from settings.
	// Set by SetLogLevelGetter before Init is called.
	logLevelGetter func() string
)

// SetLogLevelGetter sets a callback function to get the log level from settings.
// This allows the logging package to read settings without a circular dependency.
// The callback is only used if neither environment variable is set.
func SetLogLevelGetter(getter func() string) {
	mu.Lock()
	defer mu.Unlock()
	logLevelGetter = getter
}

// Init initializes the diagnostic logger. When no toggle enables it, the
// logger stays off and log calls are no-ops. A log file that cannot be
// opened degrades to a disabled logger rather than an error: logging
// failures must never affect the hook's decision.
func Init() {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	levelStr := resolveLevelString()
	if levelStr == "" {
		return // log disabled
	}
	level := parseLogLevel(levelStr)

	logPath, err := paths.LogFilePath()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // fixed path under the config dir
	if err != nil {
		return
	}

	logFile = f
	logBufWriter = bufio.NewWriterSize(f, 8192) // 8KB buffer for batched writes
	logger = createLogger(logBufWriter, level)
}

// Close closes the log file if one is open.
// Flushes any buffered data before closing.
// Safe to call multiple times.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logBufWriter != nil {
		_ = logBufWriter.Flush()
		logBufWriter = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = nil
}

// resolveLevelString returns the configured level, or "" when the log is
// disabled. THINKFIX_DEBUG wins, then THINKFIX_LOG_LEVEL, then settings.
func resolveLevelString() string {
	if os.Getenv(DebugEnvVar) != "" {
		return "DEBUG"
	}
	if level := os.Getenv(LogLevelEnvVar); level != "" {
		return level
	}
	if logLevelGetter != nil {
		return logLevelGetter()
	}
	return ""
}

// getLogger returns the current logger, or nil when logging is disabled.
func getLogger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// createLogger creates a JSON logger writing to the given writer at the specified level.
func createLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewJSONHandler(w, opts)
	return slog.New(handler)
}

// parseLogLevel parses a log level string to slog.Level.
// Returns slog.LevelInfo for empty or invalid values.
func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs at DEBUG level with context values automatically extracted.
func Debug(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs at INFO level with context values automatically extracted.
func Info(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs at WARN level with context values automatically extracted.
func Warn(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs at ERROR level with context values automatically extracted.
func Error(ctx context.Context, msg string, attrs ...any) {
	log(ctx, slog.LevelError, msg, attrs...)
}

// LogDuration logs a message with duration_ms calculated from the start time.
// Designed for use with defer:
//
//	defer logging.LogDuration(ctx, slog.LevelDebug, "hook completed", time.Now())
func LogDuration(ctx context.Context, level slog.Level, msg string, start time.Time, attrs ...any) {
	durationMs := time.Since(start).Milliseconds()

	allAttrs := make([]any, 0, len(attrs)+1)
	allAttrs = append(allAttrs, slog.Int64("duration_ms", durationMs))
	allAttrs = append(allAttrs, attrs...)

	log(ctx, level, msg, allAttrs...)
}

// log is the internal logging function that extracts context values and logs.
func log(ctx context.Context, level slog.Level, msg string, attrs ...any) {
	l := getLogger()
	if l == nil {
		return
	}

	var allAttrs []any
	for _, a := range attrsFromContext(ctx) {
		allAttrs = append(allAttrs, a)
	}
	allAttrs = append(allAttrs, attrs...)

	// Pass nil context to slog as we've already extracted context values as attributes.
	l.Log(nil, level, msg, allAttrs...) //nolint:staticcheck // nil context is intentional - we extract values as attributes
}

// attrsFromContext extracts logging attributes from a context.
func attrsFromContext(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var attrs []slog.Attr
	if v := ctx.Value(sessionIDKey); v != nil {
		if s, ok := v.(string); ok && s != "" {
			attrs = append(attrs, slog.String("session_id", s))
		}
	}
	if v := ctx.Value(componentKey); v != nil {
		if s, ok := v.(string); ok && s != "" {
			attrs = append(attrs, slog.String("component", s))
		}
	}
	return attrs
}
