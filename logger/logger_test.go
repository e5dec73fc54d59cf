package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rskv-p/stuff/codec"
	"github.com/rskv-p/stuff/constant"
	"github.com/rskv-p/stuff/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsole(t *testing.T, level string) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, logger.Config{Level: level, Process: "stuffd"})
	return l, &buf
}

func newJSON(t *testing.T, cfg logger.Config) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg.Format = logger.FormatJSON
	cfg.Process = "stuffd"
	return logger.NewWithWriter(&buf, cfg), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m, err := codec.DecodeString[map[string]any](line)
		require.NoError(t, err, line)
		out = append(out, m)
	}
	return out
}

func TestSeverityGating(t *testing.T) {
	l, buf := newConsole(t, "info")

	l.Print("Just as the standard print but now with detailed information")
	l.Warn("Now it's a warning")
	l.Error("Or even an error")
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))

	buf.Reset()
	l.SetMinimumSeverity(logger.LevelError)
	l.Print("Now you won't see normal log output")
	l.Warn("still hidden")
	assert.Empty(t, buf.String())

	l.Log(logger.LevelError, "Only errors are shown")
	assert.Contains(t, buf.String(), "Only errors are shown")

	buf.Reset()
	l.SetMinimumSeverity(logger.LevelNone)
	l.Error("Or if it's disabled you won't see any log")
	l.Fatal("nor this")
	l.Log(logger.LevelAlways, "nor the sentinel")
	assert.Empty(t, buf.String())
	assert.False(t, l.Enabled(logger.LevelFatal))
}

func TestEnabled(t *testing.T) {
	l, _ := newConsole(t, "warn")
	assert.Equal(t, logger.LevelWarn, l.MinimumSeverity())
	assert.False(t, l.Enabled(logger.LevelDebug))
	assert.True(t, l.Enabled(logger.LevelWarn))
	assert.True(t, l.Enabled(logger.LevelFatal))
	assert.True(t, l.Enabled(logger.LevelAlways))
	assert.False(t, l.Enabled(logger.LevelNone))
}

func TestPrint_InfersLevel(t *testing.T) {
	l, buf := newConsole(t, "info")

	l.Print(errors.New("boom"))
	assert.Contains(t, buf.String(), "🚫 .error ")
	assert.Contains(t, buf.String(), "➡️ boom")

	buf.Reset()
	l.Print("plain")
	assert.Contains(t, buf.String(), "✳️ .debug ")

	buf.Reset()
	l.Print("forced", logger.WithLevel(logger.LevelWarn))
	assert.Contains(t, buf.String(), "⚠️ .warn ")
}

func TestConsoleRecord(t *testing.T) {
	l, buf := newConsole(t, "info")

	_, _, line, _ := runtime.Caller(0)
	l.Info("hello")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "❓ .info ⏱ "), out)
	assert.Contains(t, out, fmt.Sprintf("📱 stuffd [%d:", os.Getpid()))
	assert.Contains(t, out, fmt.Sprintf("📂 logger_test.go(%d)", line+1))
	assert.Contains(t, out, "⚙️ logger_test.TestConsoleRecord ➡️ hello\n")
	assert.NotContains(t, out, "\x1b[")
}

type temperature struct {
	Celsius float64 `json:"celsius"`
}

func TestConsoleRecord_StructMessage(t *testing.T) {
	l, buf := newConsole(t, "info")
	l.Debug(temperature{Celsius: 21.5})
	assert.Contains(t, buf.String(), `➡️ {"celsius":21.5}`)

	buf.Reset()
	l.Debug(nil)
	assert.Contains(t, buf.String(), "➡️ <nil>")
}

func TestJSONRecord(t *testing.T) {
	l, buf := newJSON(t, logger.Config{})

	before := time.Now()
	l.Warn("disk low")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	rec := lines[0]

	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "⚠️", rec["glyph"])
	assert.Equal(t, "stuffd", rec["process"])
	assert.Equal(t, float64(os.Getpid()), rec["pid"])
	assert.Equal(t, "logger_test.go", rec["file"])
	assert.Contains(t, rec["func"], "TestJSONRecord")
	assert.Equal(t, "disk low", rec["message"])
	assert.NotZero(t, rec["line"])
	assert.NotZero(t, rec["goroutine"])
	assert.NotContains(t, rec, "trace")

	ts, err := time.Parse(time.RFC3339Nano, rec["time"].(string))
	require.NoError(t, err)
	assert.False(t, ts.Before(before.Truncate(time.Second)))
}

func TestCallTrace(t *testing.T) {
	l, buf := newJSON(t, logger.Config{})
	l.Info("with trace", logger.WithCallTrace())

	rec := decodeLines(t, buf)[0]
	trace, ok := rec["trace"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, trace)
	assert.Contains(t, trace[0], "TestCallTrace")

	var cbuf bytes.Buffer
	c := logger.NewWithWriter(&cbuf, logger.Config{})
	c.Error(errors.New("failed"), logger.WithCallTrace())
	assert.Contains(t, cbuf.String(), "➡️ failed\n\n\t\t")
}

func TestConfigTrace_ErrorsOnly(t *testing.T) {
	l, buf := newJSON(t, logger.Config{Trace: true})

	l.Print(errors.New("bad"))
	l.Print("fine")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "trace")
	assert.NotContains(t, lines[1], "trace")
}

func TestAlwaysSentinel(t *testing.T) {
	l, buf := newJSON(t, logger.Config{Level: "error"})
	var sys bytes.Buffer
	l.SetSystemWriter(&sys)

	l.Warn("hidden")
	l.Log(logger.LevelAlways, "announce")
	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "always", lines[0]["level"])
	assert.Equal(t, "📣", lines[0]["glyph"])
	assert.Contains(t, sys.String(), `"message":"announce"`)

	sys.Reset()
	l.Error("regular error")
	assert.Empty(t, sys.String())

	l.SetMinimumSeverity(logger.LevelAlways)
	l.Debug("everything")
	assert.Contains(t, sys.String(), `"message":"everything"`)
	assert.Contains(t, sys.String(), `"level":"debug"`)
}

type explosive struct{}

func (explosive) String() string { panic("kaboom") }

func TestNeverPanics(t *testing.T) {
	l, buf := newConsole(t, "info")
	assert.NotPanics(t, func() { l.Info(explosive{}) })
	assert.Contains(t, buf.String(), "❓ .info ➡️ ")
	assert.Contains(t, buf.String(), "kaboom")

	var nilLogger *logger.Logger
	assert.NotPanics(t, func() { nilLogger.Info("x") })
}

func TestConcurrentSeverityChanges(t *testing.T) {
	l, _ := newConsole(t, "info")
	l.SetSystemWriter(&bytes.Buffer{})
	levels := []logger.Level{logger.LevelInfo, logger.LevelError, logger.LevelNone, logger.LevelAlways}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if i%2 == 0 {
					l.SetMinimumSeverity(levels[j%len(levels)])
				} else {
					l.Warn(j)
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "stuff.log")
	l, err := logger.New(logger.Config{Level: "debug", Format: "json", Outputs: []string{path}})
	require.NoError(t, err)

	l.Debug("to file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := logger.New(logger.Config{Level: "loud"})
	assert.True(t, errors.Is(err, constant.ErrInvalidLevel))

	_, err = logger.New(logger.Config{Format: "xml"})
	assert.True(t, errors.Is(err, constant.ErrInvalidFormat))
}

func TestDefaultLogger(t *testing.T) {
	prev := logger.Default()
	defer logger.SetDefault(prev)

	var buf bytes.Buffer
	logger.SetDefault(logger.NewWithWriter(&buf, logger.Config{Process: "stuffd"}))
	logger.Default().SetSystemWriter(&bytes.Buffer{})

	_, _, line, _ := runtime.Caller(0)
	logger.Print("package level")
	assert.Contains(t, buf.String(), fmt.Sprintf("📂 logger_test.go(%d)", line+1))
	assert.Contains(t, buf.String(), "✳️ .debug ")

	logger.SetMinimumSeverity(logger.LevelError)
	assert.Equal(t, logger.LevelError, logger.MinimumSeverity())
	buf.Reset()
	logger.Warn("hidden")
	logger.Info("hidden")
	logger.Debug("hidden")
	assert.Empty(t, buf.String())
	logger.Error("shown")
	logger.Fatal("shown too")
	logger.Log(logger.LevelAlways, "sentinel")
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))

	logger.SetDefault(nil)
	assert.NotNil(t, logger.Default())
}
