// Package internal holds process-wide infrastructure for windowstack.
// Types and functions in this package are not part of the public API.
package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile *os.File
	logPath string
	output  io.Writer = os.Stdout

	setupOnce   sync.Once
	multiWriter io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   *slog.LevelVar

	internalLoggerOnce sync.Once
	internalLogger     *slog.Logger
	internalLevelVar   *slog.LevelVar
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories. Must be called before the first log call.
func SetLogPath(path string) {
	logPath = path
}

// SetOutput replaces stdout as the console side of the log writer.
// Must be called before the first log call.
func SetOutput(w io.Writer) {
	output = w
}

func setup() {
	setupOnce.Do(func() {
		if logPath == "" {
			multiWriter = output
			return
		}

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			multiWriter = output
			return
		}

		var err error
		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			// Can't open log file, fall back to console-only
			multiWriter = output
			return
		}

		multiWriter = io.MultiWriter(output, logFile)
	})
}

func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		levelVar = &slog.LevelVar{}

		setup()

		handler := slog.NewJSONHandler(multiWriter, &slog.HandlerOptions{
			Level:     levelVar,
			AddSource: false,
		})
		logger = slog.New(handler)
	})
	return logger
}

func GetInternalLogger() *slog.Logger {
	internalLoggerOnce.Do(func() {
		internalLevelVar = &slog.LevelVar{}
		internalLevelVar.Set(slog.LevelWarn)

		setup()

		handler := slog.NewJSONHandler(multiWriter, &slog.HandlerOptions{
			Level:     internalLevelVar,
			AddSource: false,
		})
		internalLogger = slog.New(handler).With("component", "windowstack")
	})
	return internalLogger
}

func SetLogLevel(level slog.Level) {
	GetLogger()
	levelVar.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	GetInternalLogger()
	internalLevelVar.Set(level)
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a level.
// Anything else is info.
func ParseLevel(rawLevel string) slog.Level {
	switch strings.ToLower(rawLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetRawLogLevel(rawLevel string) {
	SetLogLevel(ParseLevel(rawLevel))
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
