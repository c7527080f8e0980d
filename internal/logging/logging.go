// Package logging builds the charm loggers used by the CLI and the servers.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu    sync.RWMutex
	level = log.InfoLevel
)

// SetLevel sets the level for loggers created afterwards.
// Accepts debug, info, warn, error and fatal (case-insensitive).
func SetLevel(name string) error {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	mu.Lock()
	level = lvl
	mu.Unlock()
	return nil
}

// Level returns the current level.
func Level() log.Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// New creates a timestamped logger writing to stderr.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           Level(),
	})
}

// Discard returns a logger that drops everything. Used by tests and by
// components constructed without a logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
