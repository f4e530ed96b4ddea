// Package utils provides common utilities shared across packages
package utils

import (
	"fmt"
	"strings"
	"sync"
)

// Logger defines a common logging interface used throughout the application
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NoopLogger is a logger implementation that does nothing
type NoopLogger struct{}

func (l NoopLogger) Debug(format string, args ...interface{}) {}
func (l NoopLogger) Info(format string, args ...interface{})  {}
func (l NoopLogger) Warn(format string, args ...interface{})  {}
func (l NoopLogger) Error(format string, args ...interface{}) {}

// RecordingLogger keeps every message as "LEVEL message". It is safe for
// concurrent use.
type RecordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *RecordingLogger) Debug(format string, args ...interface{}) { l.add("DEBUG", format, args) }
func (l *RecordingLogger) Info(format string, args ...interface{})  { l.add("INFO", format, args) }
func (l *RecordingLogger) Warn(format string, args ...interface{})  { l.add("WARN", format, args) }
func (l *RecordingLogger) Error(format string, args ...interface{}) { l.add("ERROR", format, args) }

func (l *RecordingLogger) add(level, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

// Lines returns a copy of the recorded messages.
func (l *RecordingLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Contains reports whether any recorded message contains substr.
func (l *RecordingLogger) Contains(substr string) bool {
	for _, line := range l.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
