package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level is the minimum severity a Logger writes
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a level name to a Level, defaulting to info
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a wrapper around the standard library logger
type Logger struct {
	*log.Logger
	scope string
	level Level
}

// New creates a new logger for the given scope (a username, a chat or a component)
func New(scope string) *Logger {
	return &Logger{
		Logger: log.New(output, "", 0),
		scope:  scope,
		level:  minLevel,
	}
}

// With returns a copy of the logger bound to another scope
func (l *Logger) With(scope string) *Logger {
	return &Logger{
		Logger: l.Logger,
		scope:  scope,
		level:  l.level,
	}
}

// formatMessage formats a log message with timestamp and scope
func (l *Logger) formatMessage(level, format string, v ...interface{}) string {
	timestamp := time.Now().Format(time.RFC3339)
	message := fmt.Sprintf(format, v...)

	if l.scope != "" {
		return fmt.Sprintf("[%s] [%s] [%s] %s", timestamp, level, l.scope, message)
	}

	return fmt.Sprintf("[%s] [%s] %s", timestamp, level, message)
}

func (l *Logger) write(level Level, name, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.Logger.Println(l.formatMessage(name, format, v...))
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.write(LevelInfo, "INFO", format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.write(LevelError, "ERROR", format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.write(LevelDebug, "DEBUG", format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.write(LevelWarn, "WARN", format, v...)
}

var (
	output   io.Writer = os.Stdout
	minLevel           = LevelInfo
)

// Configure sets the writer and minimum level for loggers created afterwards
// and rebuilds the global logger.
func Configure(w io.Writer, level Level) {
	if w == nil {
		w = os.Stdout
	}
	output = w
	minLevel = level
	Global = New("")
}

// Global logger instance for application-wide logging
var Global = New("")

// SetGlobal sets the global logger
func SetGlobal(logger *Logger) {
	Global = logger
}
