package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// sink is one destination; style is set when the destination is a terminal
// and colour is allowed.
type sink struct {
	w     io.Writer
	style func(Level, string) string
}

func newSink(w io.Writer, noColor bool) sink {
	s := sink{w: w}
	if !noColor && isTerminal(w) {
		s.style = levelStyler(w)
	}
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// openOutputs builds one sink per configured output. Files are created
// lazily by lumberjack and returned as closers.
func openOutputs(cfg Config) ([]sink, []io.Closer, error) {
	var (
		sinks   []sink
		closers []io.Closer
	)
	for _, out := range cfg.Outputs {
		switch out {
		case OutputStdout:
			sinks = append(sinks, newSink(os.Stdout, cfg.NoColor))
		case OutputStderr, "":
			sinks = append(sinks, newSink(os.Stderr, cfg.NoColor))
		default:
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return nil, closers, err
			}
			lj := rotatingFile(out, cfg)
			sinks = append(sinks, newSink(lj, true))
			closers = append(closers, lj)
		}
	}
	return sinks, closers, nil
}

func rotatingFile(path string, cfg Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}

// fallbackSystemFile is used when the platform system log is unavailable.
func fallbackSystemFile(tag string, cfg Config) *lumberjack.Logger {
	return rotatingFile(filepath.Join(os.TempDir(), tag+"-system.log"), cfg)
}
