package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger interface for structured logging
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
}

// ZeroLogger implements Logger on top of zerolog. Fields are passed as
// alternating key/value pairs.
type ZeroLogger struct {
	log zerolog.Logger
}

// New creates a logger writing structured JSON to stderr. Set environment
// to "development" for human-readable console output and debug level.
func New(environment string) Logger {
	level := zerolog.InfoLevel
	var out zerolog.Logger
	if environment == "development" {
		level = zerolog.DebugLevel
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		out = zerolog.New(os.Stderr)
	}
	return &ZeroLogger{log: out.Level(level).With().Timestamp().Logger()}
}

// Info logs an info message
func (l *ZeroLogger) Info(msg string, fields ...interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

// Error logs an error message
func (l *ZeroLogger) Error(msg string, err error, fields ...interface{}) {
	l.log.Error().Err(err).Fields(fields).Msg(msg)
}

// Warn logs a warning message
func (l *ZeroLogger) Warn(msg string, fields ...interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

// Debug logs a debug message
func (l *ZeroLogger) Debug(msg string, fields ...interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

// Fatal logs a fatal error and exits
func (l *ZeroLogger) Fatal(msg string, err error, fields ...interface{}) {
	l.log.Fatal().Err(err).Fields(fields).Msg(msg)
}
