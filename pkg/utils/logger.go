package utils

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// LogLevel represents the verbosity level of logging
type LogLevel int

const (
	ErrorLevel LogLevel = iota
	WarningLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// String returns a string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case ErrorLevel:
		return "ERROR"
	case WarningLevel:
		return "WARNING"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	case TraceLevel:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zerologLevel() zerolog.Level {
	switch l {
	case ErrorLevel:
		return zerolog.ErrorLevel
	case WarningLevel:
		return zerolog.WarnLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case DebugLevel:
		return zerolog.DebugLevel
	case TraceLevel:
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger wraps a zerolog logger with the leveled helpers the search engine
// logs through. Stage helpers tag each message with the engine component.
type Logger struct {
	Level LogLevel
	zl    zerolog.Logger
}

// NewLogger creates a new logger with the specified verbosity level
func NewLogger(level LogLevel) *Logger {
	return NewWriterLogger(level, os.Stdout)
}

// NewWriterLogger creates a new logger writing to the given writer
func NewWriterLogger(level LogLevel, out io.Writer) *Logger {
	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05.000",
		NoColor:    true,
	}
	zl := zerolog.New(console).Level(level.zerologLevel()).With().Timestamp().Logger()
	return &Logger{Level: level, zl: zl}
}

// NewFileLogger creates a new logger that writes to a file
func NewFileLogger(level LogLevel, filename string) (*Logger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "create log file %s", filename)
	}
	return NewWriterLogger(level, file), nil
}

// SetLevel changes the logger's verbosity level
func (l *Logger) SetLevel(level LogLevel) {
	l.Level = level
	l.zl = l.zl.Level(level.zerologLevel())
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

// Trace logs a trace message (highest verbosity)
func (l *Logger) Trace(format string, args ...interface{}) {
	l.zl.Trace().Msgf(format, args...)
}

func (l *Logger) stage(level zerolog.Level, name, format string, args ...interface{}) {
	l.zl.WithLevel(level).Str("stage", name).Msgf(format, args...)
}

// Circuit logs information about circuit state
func (l *Logger) Circuit(format string, args ...interface{}) {
	l.stage(zerolog.DebugLevel, "circuit", format, args...)
}

// Algorithm logs information about the search execution
func (l *Logger) Algorithm(format string, args ...interface{}) {
	l.stage(zerolog.DebugLevel, "algorithm", format, args...)
}

// Decision logs information about PI decisions
func (l *Logger) Decision(format string, args ...interface{}) {
	l.stage(zerolog.DebugLevel, "decision", format, args...)
}

// Backtrack logs information about backtracking
func (l *Logger) Backtrack(format string, args ...interface{}) {
	l.stage(zerolog.DebugLevel, "backtrack", format, args...)
}

// Implication logs information about implication operations
func (l *Logger) Implication(format string, args ...interface{}) {
	l.stage(zerolog.TraceLevel, "implication", format, args...)
}

// DefaultLogger is the default logger instance
var DefaultLogger = NewLogger(InfoLevel)

// SetDefaultLogLevel sets the log level of the default logger
func SetDefaultLogLevel(level LogLevel) {
	DefaultLogger.SetLevel(level)
}
