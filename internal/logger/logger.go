// Package logger wraps charm/log for the CLI and the HTTP server.
package logger

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at info level, or debug when verbose.
func New(w io.Writer, verbose bool) *Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "mdtree",
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard)}
}

// Rendered logs a completed render
func (l *Logger) Rendered(source string, bytes int, duration time.Duration) {
	l.Debug("rendered",
		"source", source,
		"bytes", bytes,
		"duration", duration.Round(time.Microsecond))
}

// RenderFailed logs a failed render
func (l *Logger) RenderFailed(source string, err error) {
	l.Error("render failed",
		"source", source,
		"error", err)
}

// Request logs a served HTTP request
func (l *Logger) Request(r *http.Request, status int, duration time.Duration) {
	l.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"duration", duration.Round(time.Microsecond))
}

// ConfigLoaded logs the config file in use
func (l *Logger) ConfigLoaded(path string, found bool) {
	l.Debug("config loaded",
		"path", path,
		"found", found)
}
