// Package log is the process-wide structured logger.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var (
	level  = new(slog.LevelVar)
	logger atomic.Pointer[slog.Logger]
)

func init() {
	level.Set(slog.LevelWarn)
	SetOutput(os.Stderr)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	logger.Load().Info(msg, args...)
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	logger.Load().Debug(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	logger.Load().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	logger.Load().Error(msg, args...)
}

// With returns a logger carrying args on every record.
func With(args ...any) *slog.Logger {
	return logger.Load().With(args...)
}

// SetLevel changes the minimum level.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Level returns the minimum level.
func Level() slog.Level {
	return level.Level()
}

// SetOutput sends records to w as text.
func SetOutput(w io.Writer) {
	logger.Store(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
