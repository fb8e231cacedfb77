// Package logging provides the narrow logger interface used throughout
// the engine, backed by log/slog with a human-friendly console handler.
package logging

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// Logger is the logging surface every package depends on, matching the
// shape used across the engine's packages so components can share one
// concrete implementation without importing log/slog directly.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// NoOpLogger discards everything; useful in tests that don't care about
// log output.
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(msg string, args ...interface{}) {}
func (n *NoOpLogger) Info(msg string, args ...interface{})  {}
func (n *NoOpLogger) Warn(msg string, args ...interface{})  {}
func (n *NoOpLogger) Error(msg string, args ...interface{}) {}

// slogLogger adapts *slog.Logger to the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

// New builds a console logger using tint's colored handler, at the
// given minimum level.
func New(level slog.Level) Logger {
	handler := tint.NewHandler(os.Stderr, &tint.Options{Level: level})
	return &slogLogger{l: slog.New(handler)}
}

func (s *slogLogger) Debug(msg string, args ...interface{}) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...interface{})  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...interface{})  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...interface{}) { s.l.Error(msg, args...) }
