package logger

import (
	"os"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewWithWriter(os.Stderr, DefaultConfig()))
}

// Default returns the process-wide logger used by the package functions.
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger. A nil logger is ignored.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

func SetMinimumSeverity(level Level) { Default().SetMinimumSeverity(level) }

func MinimumSeverity() Level { return Default().MinimumSeverity() }

// Print logs v on the default logger with an inferred severity.
func Print(v any, opts ...Option) {
	l := Default()
	o := resolve(opts)
	level := inferLevel(v)
	if o.hasLevel {
		level = o.level
	}
	l.emit(level, v, o)
}

func Log(level Level, v any, opts ...Option) { Default().emit(level, v, resolve(opts)) }

func Info(v any, opts ...Option)  { Default().emit(LevelInfo, v, resolve(opts)) }
func Debug(v any, opts ...Option) { Default().emit(LevelDebug, v, resolve(opts)) }
func Warn(v any, opts ...Option)  { Default().emit(LevelWarn, v, resolve(opts)) }
func Error(v any, opts ...Option) { Default().emit(LevelError, v, resolve(opts)) }
func Fatal(v any, opts ...Option) { Default().emit(LevelFatal, v, resolve(opts)) }
