package debug

import (
	"fmt"
	"io"
	"log/slog"
)

var (
	writer io.Writer = io.Discard
	logger           = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// SetOutput sets the debug output destination
func SetOutput(w io.Writer) {
	writer = w
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Log writes a debug message
func Log(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}

// Warn records a non-fatal diagnostic, such as a team name with no match
func Warn(msg string, attrs ...any) {
	logger.Warn(msg, attrs...)
}

// Info records a structured informational event
func Info(msg string, attrs ...any) {
	logger.Info(msg, attrs...)
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	return writer != io.Discard
}
