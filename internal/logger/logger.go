// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). Loggers are safe for concurrent use and
// can be split into named component loggers that share one level.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// core holds the shared state behind a logger and all its Named children.
type core struct {
	mu     sync.RWMutex
	level  Level
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// Logger is a leveled logger, optionally scoped to a component name.
type Logger struct {
	c    *core
	name string
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	flags := log.Ldate | log.Ltime

	return &Logger{c: &core{
		level:  level,
		debug:  log.New(out, "[DBG] ", flags),
		info:   log.New(out, "[INF] ", flags),
		warn:   log.New(out, "[WRN] ", flags),
		errLog: log.New(out, "[ERR] ", flags),
	}}
}

// Named returns a logger that prefixes every message with the component
// name. The child shares the parent's output and level.
func (l *Logger) Named(name string) *Logger {
	if l.name != "" {
		name = l.name + "." + name
	}
	return &Logger{c: l.c, name: name}
}

// SetLevel changes the log level at runtime for the logger and all its
// named children.
func (l *Logger) SetLevel(level Level) {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	l.c.level = level
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.c.mu.RLock()
	defer l.c.mu.RUnlock()
	return l.c.level
}

func (l *Logger) msg(format string, args ...any) string {
	s := fmt.Sprintf(format, args...)
	if l.name != "" {
		return l.name + ": " + s
	}
	return s
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.c.mu.RLock()
	defer l.c.mu.RUnlock()
	if l.c.level >= LevelVerbose {
		l.c.debug.Output(2, l.msg(format, args...))
	}
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.c.mu.RLock()
	defer l.c.mu.RUnlock()
	if l.c.level >= LevelNormal {
		l.c.info.Output(2, l.msg(format, args...))
	}
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.c.mu.RLock()
	defer l.c.mu.RUnlock()
	if l.c.level >= LevelNormal {
		l.c.warn.Output(2, l.msg(format, args...))
	}
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.c.mu.RLock()
	defer l.c.mu.RUnlock()
	if l.c.level >= LevelNormal {
		l.c.errLog.Output(2, l.msg(format, args...))
	}
}
