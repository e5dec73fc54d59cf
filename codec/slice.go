package codec

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"
)

// DecodeSlice decodes a JSON array into []T. The first element that fails
// aborts the whole call; no partial result is returned.
func DecodeSlice[T any](data []byte, opts ...Option) ([]T, error) {
	o := NewOptions(opts...)
	node, err := parseAt(data, o)
	if err != nil {
		return nil, err
	}
	arr, ok := node.([]any)
	if !ok {
		return nil, decodeErrorf("expected a JSON array, got %s", jsonKind(node))
	}

	d := &decoder{opts: o}
	out := make([]T, len(arr))
	for i := range arr {
		if err := d.decode(arr[i], reflect.ValueOf(&out[i]).Elem()); err != nil {
			return nil, atIndex(err, i)
		}
	}
	return out, nil
}

// DecodeSliceString is DecodeSlice for JSON text.
func DecodeSliceString[T any](s string, opts ...Option) ([]T, error) {
	if !utf8.ValidString(s) {
		return nil, decodeErrorf("input is not valid UTF-8")
	}
	return DecodeSlice[T]([]byte(s), opts...)
}

// EncodeSlice encodes each element on its own and joins them into a JSON
// array. With Pretty a newline follows "[" and every comma and precedes "]";
// elements keep their own indentation. Any element failure fails the call.
func EncodeSlice[T any](items []T, opts ...Option) (string, error) {
	o := NewOptions(opts...)
	parts := make([]string, 0, len(items))
	for i := range items {
		b, err := encodeWith(items[i], o)
		if err != nil {
			return "", atIndex(err, i)
		}
		parts = append(parts, string(b))
	}
	return joinArray(parts, o.Pretty), nil
}

// EncodeSliceLenient is EncodeSlice that leaves out elements which cannot be
// encoded. The text is always valid JSON; the skipped elements' errors are
// joined into the returned error.
func EncodeSliceLenient[T any](items []T, opts ...Option) (string, error) {
	o := NewOptions(opts...)
	parts := make([]string, 0, len(items))
	var errs []error
	for i := range items {
		b, err := encodeWith(items[i], o)
		if err != nil {
			errs = append(errs, atIndex(err, i))
			continue
		}
		parts = append(parts, string(b))
	}
	return joinArray(parts, o.Pretty), errors.Join(errs...)
}

func joinArray(parts []string, pretty bool) string {
	if len(parts) == 0 {
		return "[]"
	}
	nl := ""
	if pretty {
		nl = "\n"
	}
	return "[" + nl + strings.Join(parts, ","+nl) + nl + "]"
}
