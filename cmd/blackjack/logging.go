package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLogger configures a logger writing to stderr
func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

// setupFileLogger logs to the given file, or discards everything when the
// file cannot be opened. Used by the TUI, which owns the terminal.
func setupFileLogger(path string, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard)
	}

	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}
