// file: stuff/codec/json.go
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"unicode/utf8"
)

// Encode converts v to JSON bytes using the given options.
func Encode(v any, opts ...Option) ([]byte, error) {
	return encodeWith(v, NewOptions(opts...))
}

// EncodeString converts v to a JSON string using the given options.
func EncodeString(v any, opts ...Option) (string, error) {
	b, err := Encode(v, opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MustEncode encodes v or panics on failure.
func MustEncode(v any, opts ...Option) []byte {
	b, err := Encode(v, opts...)
	if err != nil {
		panic(fmt.Sprintf("encode error: %v", err))
	}
	return b
}

func encodeWith(v any, o *Options) ([]byte, error) {
	e := &encoder{opts: o}
	if err := e.encode(reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	if !o.Pretty {
		return e.buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, e.buf.Bytes(), "", o.indent()); err != nil {
		return nil, encodeErrorf("%v", err)
	}
	return out.Bytes(), nil
}

// Decode parses data into a new T. With WithKeyPath only the nested value is decoded.
func Decode[T any](data []byte, opts ...Option) (T, error) {
	var out T
	if err := DecodeInto(data, &out, opts...); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// DecodeString is Decode for JSON text.
func DecodeString[T any](s string, opts ...Option) (T, error) {
	if !utf8.ValidString(s) {
		var zero T
		return zero, decodeErrorf("input is not valid UTF-8")
	}
	return Decode[T]([]byte(s), opts...)
}

// DecodeInto parses data into the value out points to.
func DecodeInto(data []byte, out any, opts ...Option) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return decodeErrorf("target must be a non-nil pointer, got %T", out)
	}
	o := NewOptions(opts...)
	node, err := parseAt(data, o)
	if err != nil {
		return err
	}
	return (&decoder{opts: o}).decode(node, rv.Elem())
}

func parseAt(data []byte, o *Options) (any, error) {
	node, err := parse(data, o)
	if err != nil {
		return nil, err
	}
	return selectPath(node, o.KeyPath)
}

// ----------------------------------------------------
// Reusable codec
// ----------------------------------------------------

// JSON bundles a set of options behind the Marshal/Unmarshal codec shape.
type JSON struct {
	opts []Option
}

// NewJSON returns a codec that applies opts on every call.
func NewJSON(opts ...Option) JSON {
	return JSON{opts: opts}
}

func (j JSON) Name() string { return "json" }

func (j JSON) Marshal(v any) ([]byte, error) {
	return Encode(v, j.opts...)
}

func (j JSON) Unmarshal(data []byte, v any) error {
	return DecodeInto(data, v, j.opts...)
}

// With returns a copy of j with extra options appended.
func (j JSON) With(opts ...Option) JSON {
	merged := make([]Option, 0, len(j.opts)+len(opts))
	merged = append(merged, j.opts...)
	merged = append(merged, opts...)
	return JSON{opts: merged}
}

// Options returns the options j applies.
func (j JSON) Options() []Option {
	return append([]Option(nil), j.opts...)
}
