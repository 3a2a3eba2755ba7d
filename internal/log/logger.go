// Package log is a thin structured-logging layer over slog, configured from
// the CLI config and shared through a process-wide default.
package log

import (
	"log/slog"
	"sync"

	"github.com/primarytix/outlet/internal/errors"
)

// Logger emits structured log records.
type Logger struct {
	slog *slog.Logger
}

// New builds a logger from the config.
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:     config.Level.slogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(config.writer(), opts)
	} else {
		handler = slog.NewTextHandler(config.writer(), opts)
	}

	return &Logger{slog: slog.New(handler)}
}

// With returns a logger that adds the attributes to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}

// WithError returns a logger annotated with the error. Coded errors
// contribute their code, status, and cause as separate attributes.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	if oe, ok := err.(*errors.OutletError); ok {
		args := []any{
			"error", oe.Message,
			"error_code", string(oe.Code),
		}
		if oe.Status != 0 {
			args = append(args, "status", oe.Status)
		}
		if oe.Cause != nil {
			args = append(args, "cause", oe.Cause.Error())
		}
		return l.With(args...)
	}

	return l.With("error", err.Error())
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.slog.Info(msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.slog.Warn(msg, args...) }

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// SetDefaultLogger installs the process-wide default logger.
func SetDefaultLogger(logger *Logger) {
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// DefaultLogger returns the process-wide default, creating a plain text
// logger on first use when none was installed.
func DefaultLogger() *Logger {
	defaultMu.RLock()
	logger := defaultLogger
	defaultMu.RUnlock()
	if logger != nil {
		return logger
	}

	logger = New(Config{})
	SetDefaultLogger(logger)
	return logger
}
