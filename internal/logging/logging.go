// Package logging builds the charmbracelet loggers used at the edges of the
// game: scene loading, persistence, the SSH server and the CLI.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix used when none is given.
const defaultPrefix = "doom"

// New returns a timestamped stderr logger with the given prefix.
func New(prefix string) *log.Logger {
	return NewWriter(os.Stderr, prefix)
}

// NewWriter returns a timestamped logger writing to w.
func NewWriter(w io.Writer, prefix string) *log.Logger {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// Default returns the process-wide logger, prefixed "doom".
func Default() *log.Logger {
	return New(defaultPrefix)
}

// Discard returns a logger that drops everything. Useful in tests and when
// the TUI owns the terminal.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// SetLevel parses a level name ("debug", "info", "warn", "error") and applies
// it to l. Unknown names leave the level unchanged and return false.
func SetLevel(l *log.Logger, name string) bool {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return false
	}
	l.SetLevel(lvl)
	return true
}
