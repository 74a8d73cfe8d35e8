// Package observability provides structured logging and per-request diagnostics.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with service defaults
type Logger struct {
	zl zerolog.Logger
}

// LogConfig logger settings
type LogConfig struct {
	Level       string
	Format      string // json or console
	Output      io.Writer
	ServiceName string
}

// NewLogger creates a Logger from config; unknown levels fall back to info
func NewLogger(cfg LogConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	service := cfg.ServiceName
	if service == "" {
		service = "invplanner"
	}
	zl := zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()
	return &Logger{zl: zl}
}

// Nop discards everything
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	}
	return zerolog.InfoLevel
}

// Zerolog underlying logger, for libraries that take one
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }

// Debug starts a debug event
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info starts an info event
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn starts a warning event
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error starts an error event
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// WithOperation child logger tagged with an operation name
func (l *Logger) WithOperation(op string) *Logger {
	return &Logger{zl: l.zl.With().Str("operation", op).Logger()}
}

// WithRequest child logger tagged with a request id
func (l *Logger) WithRequest(id string) *Logger {
	return &Logger{zl: l.zl.With().Str("request_id", id).Logger()}
}

// WithSheet child logger tagged with a sheet name
func (l *Logger) WithSheet(sheet string) *Logger {
	return &Logger{zl: l.zl.With().Str("sheet", sheet).Logger()}
}
