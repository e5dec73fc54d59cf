package logger

import (
	"bytes"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rskv-p/stuff/codec"
)

const maxTraceFrames = 32

// record is one log call with its call-site metadata.
type record struct {
	Level     Level
	Time      time.Time
	Process   string
	PID       int
	Goroutine uint64
	File      string
	Line      int
	Func      string
	Message   string
	Trace     []string
}

// caller resolves the call site skip frames above its own caller.
func caller(skip int) (file string, line int, fn string) {
	pc, path, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???", 0, "???"
	}
	fn = "???"
	if f := runtime.FuncForPC(pc); f != nil {
		fn = shortFunc(f.Name())
	}
	return filepath.Base(path), line, fn
}

// shortFunc drops the import path: "github.com/a/b/pkg.(*T).M" -> "pkg.(*T).M".
func shortFunc(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// callTrace lists the stack skip frames above its own caller.
func callTrace(skip int) []string {
	pcs := make([]uintptr, maxTraceFrames)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var out []string
	for {
		f, more := frames.Next()
		if f.Function != "" {
			out = append(out, shortFunc(f.Function)+" ("+filepath.Base(f.File)+":"+strconv.Itoa(f.Line)+")")
		}
		if !more {
			break
		}
	}
	return out
}

// goroutineID parses the id out of the "goroutine N [state]:" stack header.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}

// messageOf renders v and reports whether it is an error value.
func messageOf(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "<nil>", false
	case error:
		return x.Error(), true
	}
	return codec.ToString(v), false
}
