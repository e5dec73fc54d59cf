package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// callerSkip is the distance from emit to the code that called a public
// logging function or method.
const callerSkip = 2

// Logger writes formatted records gated by a minimum severity. The minimum
// can be changed concurrently with logging.
type Logger struct {
	min     atomic.Int32
	format  string
	trace   bool
	process string
	pid     int
	sinks   []sink
	closers []io.Closer
	now     func() time.Time
	mu      sync.Mutex

	sysCfg    Config
	sysOnce   sync.Once
	sys       zerolog.Logger
	sysCloser io.Closer
	sysSet    bool
}

//
// ---------- Constructors ----------

// New builds a logger from cfg, opening its outputs.
func New(cfg Config) (*Logger, error) {
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sinks, closers, err := openOutputs(cfg)
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, fmt.Errorf("open log outputs: %w", err)
	}
	l := newLogger(cfg)
	l.sinks = sinks
	l.closers = closers
	return l, nil
}

// NewWithWriter builds a logger that writes only to w; cfg.Outputs is
// ignored and an unparsable level falls back to info.
func NewWithWriter(w io.Writer, cfg Config) *Logger {
	applyDefaults(&cfg)
	if cfg.Format != FormatJSON {
		cfg.Format = FormatConsole
	}
	l := newLogger(cfg)
	l.sinks = []sink{newSink(w, cfg.NoColor)}
	return l
}

func newLogger(cfg Config) *Logger {
	threshold, err := ParseLevel(cfg.Level)
	if err != nil {
		threshold = LevelInfo
	}
	process := cfg.Process
	if process == "" {
		process = filepath.Base(os.Args[0])
	}
	l := &Logger{
		format:  cfg.Format,
		trace:   cfg.Trace,
		process: process,
		pid:     os.Getpid(),
		now:     time.Now,
		sysCfg:  cfg,
	}
	l.min.Store(int32(threshold))
	return l
}

//
// ---------- Severity ----------

// SetMinimumSeverity changes the threshold for subsequent calls.
func (l *Logger) SetMinimumSeverity(level Level) {
	l.min.Store(int32(level))
}

func (l *Logger) MinimumSeverity() Level {
	return Level(l.min.Load())
}

// Enabled reports whether a record at level would be written.
func (l *Logger) Enabled(level Level) bool {
	ok, _ := gate(level, l.MinimumSeverity())
	return ok
}

// gate decides whether a record is written and whether it also goes to the
// system channel.
func gate(level, threshold Level) (write, system bool) {
	switch {
	case threshold == LevelNone || level == LevelNone:
		return false, false
	case level == LevelAlways || threshold == LevelAlways:
		return true, true
	default:
		return level >= threshold, false
	}
}

//
// ---------- Call options ----------

type callOptions struct {
	trace    bool
	level    Level
	hasLevel bool
}

// Option adjusts a single log call.
type Option func(*callOptions)

// WithCallTrace attaches the caller's stack to the record.
func WithCallTrace() Option {
	return func(o *callOptions) { o.trace = true }
}

// WithLevel overrides the inferred severity of Print.
func WithLevel(level Level) Option {
	return func(o *callOptions) {
		o.level = level
		o.hasLevel = true
	}
}

func resolve(opts []Option) callOptions {
	var o callOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// inferLevel picks error for error values and debug for everything else.
func inferLevel(v any) Level {
	if _, ok := v.(error); ok {
		return LevelError
	}
	return LevelDebug
}

//
// ---------- Logging ----------

// Print logs v at error when it is an error value and at debug otherwise,
// unless WithLevel says differently.
func (l *Logger) Print(v any, opts ...Option) {
	o := resolve(opts)
	level := inferLevel(v)
	if o.hasLevel {
		level = o.level
	}
	l.emit(level, v, o)
}

// Log writes v at level.
func (l *Logger) Log(level Level, v any, opts ...Option) {
	l.emit(level, v, resolve(opts))
}

func (l *Logger) Info(v any, opts ...Option)  { l.emit(LevelInfo, v, resolve(opts)) }
func (l *Logger) Debug(v any, opts ...Option) { l.emit(LevelDebug, v, resolve(opts)) }
func (l *Logger) Warn(v any, opts ...Option)  { l.emit(LevelWarn, v, resolve(opts)) }
func (l *Logger) Error(v any, opts ...Option) { l.emit(LevelError, v, resolve(opts)) }

// Fatal logs at fatal severity. It does not exit.
func (l *Logger) Fatal(v any, opts ...Option) { l.emit(LevelFatal, v, resolve(opts)) }

// emit must be called directly by every public entry point so that
// callerSkip points at user code.
func (l *Logger) emit(level Level, v any, o callOptions) {
	if l == nil {
		return
	}
	write, system := gate(level, l.MinimumSeverity())
	if !write {
		return
	}

	var r *record
	defer func() {
		if p := recover(); p != nil {
			l.writePartial(level, r, p)
		}
	}()

	r = &record{
		Level:     level,
		Time:      l.now(),
		Process:   l.process,
		PID:       l.pid,
		Goroutine: goroutineID(),
	}
	r.File, r.Line, r.Func = caller(callerSkip)
	msg, isErr := messageOf(v)
	r.Message = msg
	if o.trace || (isErr && l.trace) {
		r.Trace = callTrace(callerSkip)
	}

	l.write(r)
	if system {
		l.writeSystem(r)
	}
}

func (l *Logger) write(r *record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.format == FormatJSON {
		ws := make([]io.Writer, len(l.sinks))
		for i, s := range l.sinks {
			ws[i] = s.w
		}
		zl := zerolog.New(io.MultiWriter(ws...))
		r.event(zl.Log(), true).Msg(r.Message)
		return
	}

	var plain string
	for _, s := range l.sinks {
		if s.style != nil {
			_, _ = io.WriteString(s.w, r.console(s.style))
			continue
		}
		if plain == "" {
			plain = r.console(nil)
		}
		_, _ = io.WriteString(s.w, plain)
	}
}

// writePartial is the last resort when building or writing a record panicked.
func (l *Logger) writePartial(level Level, r *record, p any) {
	defer func() { _ = recover() }()

	msg := fmt.Sprintf("<log formatting failed: %v>", p)
	if r != nil && r.Message != "" {
		msg = r.Message + " " + msg
	}
	line := partial(level, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.sinks {
		_, _ = io.WriteString(s.w, line)
	}
}

//
// ---------- System channel ----------

// SetSystemWriter replaces the system channel destination.
func (l *Logger) SetSystemWriter(w io.Writer) {
	l.sysOnce.Do(func() {})
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sys = zerolog.New(w)
	l.sysSet = true
}

func (l *Logger) openSystem() {
	l.sysOnce.Do(func() {
		tag := l.sysCfg.SystemTag
		if tag == "" {
			tag = l.process
		}
		w, c := openSystem(tag, l.sysCfg)
		l.mu.Lock()
		l.sys = zerolog.New(w)
		l.sysCloser = c
		l.sysSet = true
		l.mu.Unlock()
	})
}

func (l *Logger) writeSystem(r *record) {
	l.openSystem()

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.sysSet {
		return
	}
	zlevel := r.Level.zerologLevel()
	r.event(l.sys.WithLevel(zlevel), zlevel == zerolog.NoLevel).Msg(r.Message)
}

// Close releases file outputs and the system channel.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for _, c := range l.closers {
		errs = append(errs, c.Close())
	}
	l.closers = nil
	if l.sysCloser != nil {
		errs = append(errs, l.sysCloser.Close())
		l.sysCloser = nil
	}
	return errors.Join(errs...)
}
