// Package shared holds helpers used across the wavebg packages: logging and ids.
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a new [log.Logger] writing to w with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true, Prefix: "wavebg"}
	return log.NewWithOptions(w, opts)
}

// DiscardLogger returns a logger that drops everything. Used as the default for library types.
func DiscardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel parses name ("debug", "info", ...) and applies it to l.
// Unknown names leave the level untouched and are reported back as an error.
func SetLogLevel(l *log.Logger, name string) error {
	if name == "" {
		return nil
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)
	return nil
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}
