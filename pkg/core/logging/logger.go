// ============================================================================
// Delegate - Command Registration and Dispatch Engine
// ============================================================================
//
// Package:     logging
// Description: Key-value logger used by the internal packages
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	dlglog "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/log"
)

// Logger wraps the Foundation logger with key-value methods
type Logger struct {
	base *dlglog.Logger
	name string
}

// New creates a key-value logger writing to stderr
func New(name string) *Logger {
	return &Logger{
		base: NewSimpleLogger(name),
		name: name,
	}
}

// Wrap adapts an existing Foundation logger. A nil logger falls back to the
// package default.
func Wrap(base *dlglog.Logger, component string) *Logger {
	if base == nil {
		base = dlglog.GetDefault()
	}
	if component != "" {
		base = base.WithField("component", component)
	}
	return &Logger{base: base, name: component}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{base: dlglog.Discard(), name: "nop"}
}

// Base returns the wrapped Foundation logger
func (l *Logger) Base() *dlglog.Logger {
	return l.base
}

// With returns a logger carrying the given key-value pairs on every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		base: l.base.WithFields(toFields(keysAndValues...)),
		name: l.name,
	}
}

// WithRequestID tags every entry with a dispatch request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{base: l.base.WithRequestID(requestID), name: l.name}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.base.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.base.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.base.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.base.Error(msg, toFields(keysAndValues...))
}

// LogError logs err at the level its severity maps to, with its code and
// details as fields
func (l *Logger) LogError(err error) {
	l.base.LogError(err)
}

// Audit logs an audit record, it is written regardless of level
func (l *Logger) Audit(msg string, keysAndValues ...interface{}) {
	l.base.Audit(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to Fields, a trailing key is dropped
func toFields(keysAndValues ...interface{}) dlglog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(dlglog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keysAndValues[i+1].(error); isErr && err != nil {
			fields[key] = err.Error()
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
