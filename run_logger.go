package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// runLogger is the logger of the test run as a whole, as opposed to the per-test debug loggers.
// Used as a framework.Logger, its Printf output is debug-level.
type runLogger struct {
	*log.Logger
}

func newRunLogger(out io.Writer, debug bool) runLogger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return runLogger{log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})}
}

func (l runLogger) Printf(message string, args ...interface{}) {
	l.Debugf(message, args...)
}
