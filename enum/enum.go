// Package enum gives tagged-union style Go types a uniform way to expose
// their active case, payload and raw value.
package enum

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/rskv-p/stuff/codec"
	"github.com/rskv-p/stuff/constant"
)

// ----------------------------------------------------
// Interfaces
// ----------------------------------------------------

// Tagged is implemented by every case of a tagged union. payload is nil for
// cases without associated values.
type Tagged interface {
	Tag() (label string, payload []any)
}

// Enumerable lists the declared cases of a simple enumeration.
type Enumerable[T any] interface {
	Cases() []T
}

// RawValuer is implemented by enumerations backed by a scalar.
type RawValuer interface {
	RawValue() any
}

// ----------------------------------------------------
// Values
// ----------------------------------------------------

// Tuple is a payload with more than one component.
type Tuple []any

// String renders the tuple as "(4, \"more\")".
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, c := range t {
		if s, ok := c.(string); ok {
			parts[i] = strconv.Quote(s)
			continue
		}
		parts[i] = codec.ToString(c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Value is the active case of a tagged union.
type Value struct {
	Label      string
	Payload    any   // nil, the single component, or a Tuple
	Components []any // each payload component in order
}

// HasPayload reports whether the case carries associated values.
func (v Value) HasPayload() bool {
	return len(v.Components) > 0
}

// Associated returns the label and payload of v. A case without payload
// yields constant.ErrNoPayload and a non-Tagged value constant.ErrNotEnum;
// both still return a usable Value.
func Associated(v any) (Value, error) {
	t, ok := v.(Tagged)
	if !ok {
		return Value{Label: fmt.Sprint(v)}, fmt.Errorf("%w: %T", constant.ErrNotEnum, v)
	}
	label, payload := t.Tag()
	val := Value{Label: label}
	switch len(payload) {
	case 0:
		return val, fmt.Errorf("%w: case %q", constant.ErrNoPayload, label)
	case 1:
		val.Payload = payload[0]
	default:
		val.Payload = append(Tuple(nil), payload...)
	}
	val.Components = append([]any(nil), payload...)
	return val, nil
}

// AllCases returns the declared cases of T in order, without duplicates.
func AllCases[T interface {
	comparable
	Enumerable[T]
}]() []T {
	var zero T
	cases := zero.Cases()
	seen := make(map[T]struct{}, len(cases))
	out := make([]T, 0, len(cases))
	for _, c := range cases {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// RawValue returns the scalar behind v.
func RawValue(v any) (any, error) {
	if r, ok := v.(RawValuer); ok {
		return r.RawValue(), nil
	}
	return nil, fmt.Errorf("%w: %T", constant.ErrNoRawValue, v)
}

// ----------------------------------------------------
// Projections
// ----------------------------------------------------

// QueryString joins "label=value" pairs with commas. Cases without payload
// are written as the bare label.
func QueryString[T Tagged](cases []T) string {
	parts := make([]string, 0, len(cases))
	for _, c := range cases {
		v, err := Associated(c)
		if err != nil {
			parts = append(parts, v.Label)
			continue
		}
		parts = append(parts, v.Label+"="+codec.ToString(v.Payload))
	}
	return strings.Join(parts, ",")
}

// ToMap maps each label to its payload; later cases win. A case without
// payload removes its label.
func ToMap[T Tagged](cases []T) map[string]any {
	out := make(map[string]any, len(cases))
	for _, c := range cases {
		v, err := Associated(c)
		if err != nil {
			delete(out, v.Label)
			continue
		}
		out[v.Label] = v.Payload
	}
	return out
}

// Decode fills the struct out points to from ToMap(cases), matching labels to
// field names or json tags.
func Decode[T Tagged](cases []T, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", constant.ErrDecode, err)
	}
	if err := dec.Decode(ToMap(cases)); err != nil {
		return fmt.Errorf("%w: %v", constant.ErrDecode, err)
	}
	return nil
}
