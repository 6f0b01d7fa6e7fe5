package windowstack

import (
	"log/slog"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack/internal"
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before creating a Controller to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetInternalLogLevel sets the level of the controller's own logger,
// which defaults to warn so only transient host failures show up.
func SetInternalLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}

// CloseLog closes the log file, if one was opened.
func CloseLog() {
	internal.CloseLogger()
}
