package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// consoleTime renders MM/DD/YYYY HH:MM:SS:mmm.
func consoleTime(t time.Time) string {
	return t.Format("01/02/2006 15:04:05") + fmt.Sprintf(":%03d", t.Nanosecond()/int(time.Millisecond))
}

// console renders r as one console line. styleLevel may be nil.
func (r *record) console(styleLevel func(Level, string) string) string {
	name := "." + r.Level.String()
	if styleLevel != nil {
		name = styleLevel(r.Level, name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s ⏱ %s 📱 %s [%d:%d] 📂 %s(%d) ⚙️ %s ➡️ %s",
		r.Level.Glyph(), name, consoleTime(r.Time),
		r.Process, r.PID, r.Goroutine,
		r.File, r.Line, r.Func, r.Message)
	if len(r.Trace) > 0 {
		b.WriteByte('\n')
		for _, frame := range r.Trace {
			b.WriteString("\n\t\t")
			b.WriteString(frame)
		}
	}
	b.WriteByte('\n')
	return b.String()
}

// partial is written when building the full record panicked.
func partial(level Level, msg string) string {
	return fmt.Sprintf("%s .%s ➡️ %s\n", level.Glyph(), level, msg)
}

// levelStyler colours level names for a terminal sink.
func levelStyler(w io.Writer) func(Level, string) string {
	renderer := lipgloss.NewRenderer(w)
	return func(l Level, s string) string {
		return renderer.NewStyle().
			Foreground(lipgloss.Color(l.color())).
			Bold(l >= LevelError).
			Render(s)
	}
}

// event fills a zerolog event with the record fields. withLevel is false
// when the event already carries zerolog's own level field.
func (r *record) event(e *zerolog.Event, withLevel bool) *zerolog.Event {
	if withLevel {
		e = e.Str("level", r.Level.String())
	}
	e = e.Str("glyph", r.Level.Glyph()).
		Str("time", r.Time.Format(time.RFC3339Nano)).
		Str("process", r.Process).
		Int("pid", r.PID).
		Uint64("goroutine", r.Goroutine).
		Str("file", r.File).
		Int("line", r.Line).
		Str("func", r.Func)
	if len(r.Trace) > 0 {
		e = e.Strs("trace", r.Trace)
	}
	return e
}
