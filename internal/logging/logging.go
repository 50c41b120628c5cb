// Package logging builds the charmbracelet/log logger shared by the CLI and the UI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"taskboard/internal/config"
)

// Prefix is printed in front of every log line.
const Prefix = "taskboard"

// New creates a logger writing to w at the level configured in cfg.
// cfg.Debug forces debug level.
func New(cfg *config.Config, w io.Writer) *log.Logger {
	level := ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: cfg.Debug,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything. Used as the zero value by
// packages that accept an optional logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OpenFile opens (appending) the log file configured in cfg and returns a
// logger writing to it along with the file to close.
func OpenFile(cfg *config.Config) (*log.Logger, io.Closer, error) {
	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := New(cfg, f)
	logger.SetReportTimestamp(true)
	return logger, f, nil
}

// ParseLevel parses a string log level. Unknown values map to info.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
