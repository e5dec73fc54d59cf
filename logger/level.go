package logger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rskv-p/stuff/constant"
)

// Level is a log severity. Info is the lowest and None silences everything;
// Always is a sentinel that bypasses the minimum severity.
type Level int32

const (
	LevelInfo Level = iota + 1
	LevelDebug
	LevelWarn
	LevelError
	LevelFatal
	LevelNone
	LevelAlways
)

//
// ---------- IBM Carbon Colors ----------

const (
	colorTeal40    = "#3ddbd9"
	colorBlue60    = "#4589ff"
	colorOrange40  = "#ff832b"
	colorRed60     = "#da1e28"
	colorRedStrong = "#ff0000"
	colorPurple50  = "#a56eff"
	colorGray60    = "#8d8d8d"
)

var levelNames = map[Level]string{
	LevelInfo:   "info",
	LevelDebug:  "debug",
	LevelWarn:   "warn",
	LevelError:  "error",
	LevelFatal:  "fatal",
	LevelNone:   "none",
	LevelAlways: "always",
}

var levelGlyphs = map[Level]string{
	LevelInfo:   "❓",
	LevelDebug:  "✳️",
	LevelWarn:   "⚠️",
	LevelError:  "🚫",
	LevelFatal:  "🆘",
	LevelNone:   "",
	LevelAlways: "📣",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

// Glyph returns the emoji printed in front of console records.
func (l Level) Glyph() string {
	return levelGlyphs[l]
}

// Valid reports whether l is one of the declared levels.
func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// ParseLevel accepts a level name (case-insensitive, "warning" allowed) or
// its number.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return LevelWarn, nil
	}
	for l, name := range levelNames {
		if name == s {
			return l, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Level(n).Valid() {
		return Level(n), nil
	}
	return 0, fmt.Errorf("%w: %q", constant.ErrInvalidLevel, s)
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func (l Level) color() string {
	switch l {
	case LevelInfo:
		return colorBlue60
	case LevelDebug:
		return colorTeal40
	case LevelWarn:
		return colorOrange40
	case LevelError:
		return colorRed60
	case LevelFatal:
		return colorRedStrong
	case LevelAlways:
		return colorPurple50
	}
	return colorGray60
}

// zerologLevel maps onto zerolog's levels for the system channel. Fatal is
// only ever used through WithLevel, which does not exit.
func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	}
	return zerolog.NoLevel
}
