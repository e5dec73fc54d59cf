package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rskv-p/stuff/constant"
)

// pathError records where in a document an encode or decode failure happened.
type pathError struct {
	segs []string // innermost first
	err  error
}

func (e *pathError) Path() string {
	var b strings.Builder
	b.WriteByte('$')
	for i := len(e.segs) - 1; i >= 0; i-- {
		b.WriteString(e.segs[i])
	}
	return b.String()
}

func (e *pathError) Error() string {
	return fmt.Sprintf("%v (at %s)", e.err, e.Path())
}

func (e *pathError) Unwrap() error { return e.err }

func atKey(err error, key string) error {
	return atSegment(err, "."+key)
}

func atIndex(err error, i int) error {
	return atSegment(err, "["+strconv.Itoa(i)+"]")
}

func atSegment(err error, seg string) error {
	var pe *pathError
	if errors.As(err, &pe) {
		pe.segs = append(pe.segs, seg)
		return err
	}
	return &pathError{segs: []string{seg}, err: err}
}

func encodeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{constant.ErrEncode}, args...)...)
}

func decodeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{constant.ErrDecode}, args...)...)
}

// ErrorPath returns the JSON path ("$.user.tags[2]") attached to err, if any.
func ErrorPath(err error) (string, bool) {
	var pe *pathError
	if errors.As(err, &pe) {
		return pe.Path(), true
	}
	return "", false
}
