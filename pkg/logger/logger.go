// Package logger provides structured logging for gxpassess.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger is the logging interface used throughout the application.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithGroup(name string) Logger
}

// SlogLogger adapts *slog.Logger to the Logger interface.
type SlogLogger struct {
	l *slog.Logger
}

var (
	globalMu sync.RWMutex
	global   Logger = NewLogger(false, "text")
)

// NewLogger creates a slog backed logger writing to stderr.
func NewLogger(debug bool, format string) *SlogLogger {
	return NewLoggerTo(os.Stderr, debug, format)
}

// NewLoggerTo creates a slog backed logger writing to w.
func NewLoggerTo(w io.Writer, debug bool, format string) *SlogLogger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return &SlogLogger{l: slog.New(handler)}
}

// Debug logs a debug message.
func (s *SlogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }

// Info logs an info message.
func (s *SlogLogger) Info(msg string, args ...any) { s.l.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogLogger) Warn(msg string, args ...any) { s.l.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

// With returns a logger carrying additional attributes.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

// WithGroup returns a logger that nests attributes under name.
func (s *SlogLogger) WithGroup(name string) Logger {
	return &SlogLogger{l: s.l.WithGroup(name)}
}

// SetupLogger configures the global logger.
func SetupLogger(debug bool, format string) {
	SetGlobalLogger(NewLogger(debug, format))
}

// SetGlobalLogger replaces the global logger.
func SetGlobalLogger(l Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = l
}

// GetGlobalLogger returns the global logger.
func GetGlobalLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

type requestIDKey struct{}

// ContextWithRequestID stores a request id for WithContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithContext returns l annotated with the request id in ctx, if any. A nil
// l selects the global logger.
func WithContext(ctx context.Context, l Logger) Logger {
	if l == nil {
		l = GetGlobalLogger()
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return l.With("request_id", id)
	}
	return l
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	GetGlobalLogger().Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	GetGlobalLogger().Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	GetGlobalLogger().Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	GetGlobalLogger().Error(msg, args...)
}

// WithAssessment returns a logger with assessment context.
func WithAssessment(id string) Logger {
	return GetGlobalLogger().With("assessment", id)
}

// WithCompany returns a logger with company context.
func WithCompany(name, segment string) Logger {
	return GetGlobalLogger().With("company", name, "segment", segment)
}
