package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu            sync.Mutex
	logger        zerolog.Logger
	currentLevel  zerolog.Level
	previousLevel zerolog.Level
)

// Initialize sets up the logger with the given level and output format
func Initialize(level string, jsonOutput bool) {
	var output io.Writer = os.Stdout

	// Set up console writer for pretty output if not JSON
	if !jsonOutput {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	logLevel := ParseLevel(level)

	mu.Lock()
	defer mu.Unlock()
	currentLevel = logLevel
	previousLevel = logLevel
	logger = zerolog.New(output).
		Level(logLevel).
		With().
		Timestamp().
		Logger()
}

// ParseLevel converts a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ToggleDebug switches between debug level and the configured level.
// Wired to SIGUSR1 so a running process can be inspected without a restart.
func ToggleDebug() {
	mu.Lock()
	defer mu.Unlock()

	if currentLevel == zerolog.DebugLevel {
		currentLevel = previousLevel
	} else {
		previousLevel = currentLevel
		currentLevel = zerolog.DebugLevel
	}
	logger = logger.Level(currentLevel)
	logger.Info().Msgf("Log level switched to %s", currentLevel)
}

// Debug logs a debug message
func Debug(msg string) {
	logger.Debug().Msg(msg)
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	logger.Debug().Msgf(format, args...)
}

// Info logs an info message
func Info(msg string) {
	logger.Info().Msg(msg)
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	logger.Info().Msgf(format, args...)
}

// Warn logs a warning message
func Warn(msg string) {
	logger.Warn().Msg(msg)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warn().Msgf(format, args...)
}

// Error logs an error message
func Error(msg string) {
	logger.Error().Msg(msg)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Error().Msgf(format, args...)
}

// ErrorErr logs an error with an error object
func ErrorErr(msg string, err error) {
	logger.Error().Err(err).Msg(msg)
}

// WithContainer returns a logger with container context
func WithContainer(containerID, containerName string) *zerolog.Logger {
	l := logger.With().
		Str("container_id", containerID).
		Str("container_name", containerName).
		Logger()
	return &l
}

// WithImage returns a logger with image context
func WithImage(imageID, imageTag string) *zerolog.Logger {
	l := logger.With().
		Str("image_id", imageID).
		Str("image_tag", imageTag).
		Logger()
	return &l
}
