// Package logger provides leveled logging for the vidos CLI tool.
//
// Log output goes to stderr, separate from the user-facing output that goes
// to stdout. This allows verbose debugging without interfering with normal
// CLI output or JSON formatting.
//
// By default only warnings and errors are shown; Init(true) enables debug
// and info levels for the --verbose flag.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init initializes the global logger with the specified verbosity.
// When verbose is true, Debug and Info levels are enabled.
// When verbose is false, only Warn and Error are shown.
func Init(verbose bool) {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
	}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}

// With returns a structured event builder at debug level for attaching
// key/value fields.
func With() *zerolog.Event {
	return log.Debug()
}
