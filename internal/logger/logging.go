// Package logger builds the charmbracelet/log loggers used by the commands.
//
// Everything goes to stderr: stdout belongs to the IPC protocol and the play prompt.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Setup configures the package level logger that library code writes through.
func Setup(debug bool, level log.Level) {
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		log.SetTimeFormat(time.Kitchen)
		return
	}
	log.SetLevel(level)
	log.SetReportTimestamp(false)
}

// New creates a prefixed logger that follows the global level.
func New(prefix string) *log.Logger {
	return NewWithConfig(os.Stderr, prefix, log.GetLevel(), true, log.TextFormatter)
}

// NewWithConfig creates a logger with explicit settings.
func NewWithConfig(w io.Writer, prefix string, level log.Level, showTimestamp bool, f log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: showTimestamp,
		Formatter:       f,
	})
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return NewWithConfig(io.Discard, "", log.FatalLevel, false, log.TextFormatter)
}
