// Package logger provides leveled diagnostic logging for selenium-install.
//
// Diagnostics go to stderr so that the user-facing lines printed by the
// output package (and JSON produced with --json) stay clean on stdout.
//
// Levels, least to most severe: Debug, Info, Warn, Error. Init(false) keeps
// only Warn and Error; Init(true), wired to --verbose, shows everything.
//
// Lines look like:
//
//	[INFO] 2026-10-19 10:30:45 downloading artifact step=download-selenium url=http://...
//
// An install run carries its context along with With:
//
//	log := logger.With(logger.Fields{"run_id": id, "platform": "windows"})
//	log.With(logger.Fields{"step": name}).Info("step started")
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields are key=value pairs appended to a log line, sorted by key.
type Fields map[string]interface{}

// Logger writes leveled lines to a single writer.
type Logger struct {
	level  Level
	output io.Writer
	mu     sync.Mutex
}

var std = &Logger{
	level:  LevelWarn,
	output: os.Stderr,
}

// Init sets the global level from the --verbose flag.
func Init(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelWarn)
}

// SetLevel sets the minimum log level for the global logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
}

// SetOutput redirects the global logger. A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	std.output = w
}

// GetLevel returns the current log level.
func GetLevel() Level {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.level
}

func (l *Logger) write(level Level, msg string, fields Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	_, _ = fmt.Fprintf(l.output, "[%s] %s %s%s\n", level.String(), timestamp, msg, formatFields(fields))
}

func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return " " + strings.Join(parts, " ")
}

// Entry is a logger bound to a fixed set of fields.
type Entry struct {
	logger *Logger
	fields Fields
}

// With returns an Entry on the global logger carrying fields.
func With(fields Fields) *Entry {
	return (&Entry{logger: std}).With(fields)
}

// With returns a copy of e with fields added; later keys win.
func (e *Entry) With(fields Fields) *Entry {
	merged := make(Fields, len(e.fields)+len(fields))
	for k, v := range e.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Entry{logger: e.logger, fields: merged}
}

// Debug logs a formatted debug message with the entry's fields.
func (e *Entry) Debug(format string, args ...interface{}) {
	e.logger.write(LevelDebug, fmt.Sprintf(format, args...), e.fields)
}

// Info logs a formatted informational message with the entry's fields.
func (e *Entry) Info(format string, args ...interface{}) {
	e.logger.write(LevelInfo, fmt.Sprintf(format, args...), e.fields)
}

// Warn logs a formatted warning with the entry's fields.
func (e *Entry) Warn(format string, args ...interface{}) {
	e.logger.write(LevelWarn, fmt.Sprintf(format, args...), e.fields)
}

// Error logs a formatted error with the entry's fields.
func (e *Entry) Error(format string, args ...interface{}) {
	e.logger.write(LevelError, fmt.Sprintf(format, args...), e.fields)
}

// Debug logs a debug message.
// Only shown when verbose mode is enabled.
func Debug(format string, args ...interface{}) {
	std.write(LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Info logs an informational message.
// Only shown when verbose mode is enabled.
func Info(format string, args ...interface{}) {
	std.write(LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	std.write(LevelWarn, fmt.Sprintf(format, args...), nil)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	std.write(LevelError, fmt.Sprintf(format, args...), nil)
}

// InfoFields logs an informational message with structured fields.
func InfoFields(msg string, fields Fields) {
	std.write(LevelInfo, msg, fields)
}

// WarnFields logs a warning message with structured fields.
func WarnFields(msg string, fields Fields) {
	std.write(LevelWarn, msg, fields)
}
