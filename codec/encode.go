package codec

import (
	"bytes"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rskv-p/stuff/constant"
)

var (
	timeType            = reflect.TypeOf(time.Time{})
	numberType          = reflect.TypeOf(json.Number(""))
	marshalerType       = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	unmarshalerType     = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

type encoder struct {
	opts  *Options
	buf   bytes.Buffer
	depth int
}

func (e *encoder) encode(v reflect.Value) error {
	if !v.IsValid() {
		e.buf.WriteString("null")
		return nil
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		e.buf.WriteString("null")
		return nil
	}
	if e.depth > constant.MaxDepth {
		return encodeErrorf("nesting deeper than %d (cyclic value?)", constant.MaxDepth)
	}

	t := v.Type()
	switch {
	case t == timeType:
		return e.encodeTime(v.Interface().(time.Time))
	case t == numberType:
		return e.encodeNumber(json.Number(v.String()))
	case t.Kind() == reflect.Pointer && t.Elem() == timeType:
		return e.encode(v.Elem())
	case t.Implements(marshalerType):
		return e.encodeMarshaler(v.Interface().(json.Marshaler))
	case t.Implements(textMarshalerType):
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return encodeErrorf("%s.MarshalText: %v", t, err)
		}
		return e.encodeString(string(text))
	}

	switch v.Kind() {
	case reflect.Bool:
		e.buf.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.buf.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return e.encodeFloat(v)
	case reflect.String:
		return e.encodeString(v.String())
	case reflect.Interface, reflect.Pointer:
		e.depth++
		defer func() { e.depth-- }()
		return e.encode(v.Elem())
	case reflect.Struct:
		return e.encodeStruct(v)
	case reflect.Map:
		return e.encodeMap(v)
	case reflect.Slice:
		if v.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		if t.Elem().Kind() == reflect.Uint8 && !isCustomByte(t.Elem()) {
			return e.encodeBytes(v.Bytes())
		}
		return e.encodeArray(v)
	case reflect.Array:
		return e.encodeArray(v)
	default:
		return encodeErrorf("unsupported type %s", t)
	}
	return nil
}

func (e *encoder) encodeString(s string) error {
	b, err := e.opts.Engine.Marshal(s)
	if err != nil {
		return encodeErrorf("%v", err)
	}
	e.buf.Write(b)
	return nil
}

func (e *encoder) encodeNumber(n json.Number) error {
	if n == "" {
		e.buf.WriteByte('0')
		return nil
	}
	if _, err := n.Float64(); err != nil {
		return encodeErrorf("invalid number literal %q", string(n))
	}
	e.buf.WriteString(string(n))
	return nil
}

func (e *encoder) encodeFloat(v reflect.Value) error {
	f := v.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if e.opts.NonFinite != NonFiniteAsString {
			return encodeErrorf("non-finite float %v", f)
		}
		switch {
		case math.IsNaN(f):
			return e.encodeString(constant.NaNString)
		case f > 0:
			return e.encodeString(constant.PosInfString)
		default:
			return e.encodeString(constant.NegInfString)
		}
	}
	b, err := e.opts.Engine.Marshal(v.Interface())
	if err != nil {
		return encodeErrorf("%v", err)
	}
	e.buf.Write(b)
	return nil
}

func (e *encoder) encodeMarshaler(m json.Marshaler) error {
	raw, err := m.MarshalJSON()
	if err != nil {
		return encodeErrorf("%T.MarshalJSON: %v", m, err)
	}
	if err := json.Compact(&e.buf, raw); err != nil {
		return encodeErrorf("%T.MarshalJSON returned invalid JSON: %v", m, err)
	}
	return nil
}

func (e *encoder) encodeTime(t time.Time) error {
	d := e.opts.Dates
	switch d.kind {
	case dateISO8601:
		return e.encodeString(t.UTC().Format(time.RFC3339))
	case dateFormatted:
		return e.encodeString(t.Format(d.layout))
	case dateEpochSeconds:
		e.buf.WriteString(formatEpochSeconds(t))
		return nil
	case dateEpochMillis:
		e.buf.WriteString(strconv.FormatInt(t.UnixMilli(), 10))
		return nil
	default:
		b, err := t.MarshalJSON()
		if err != nil {
			return encodeErrorf("%v", err)
		}
		e.buf.Write(b)
		return nil
	}
}

func formatEpochSeconds(t time.Time) string {
	sec, nsec := t.Unix(), t.Nanosecond()
	if nsec == 0 {
		return strconv.FormatInt(sec, 10)
	}
	if sec < 0 {
		return strconv.FormatFloat(float64(t.UnixNano())/1e9, 'f', -1, 64)
	}
	frac := strings.TrimRight(strconv.Itoa(1_000_000_000 + nsec)[1:], "0")
	return strconv.FormatInt(sec, 10) + "." + frac
}

func (e *encoder) encodeBytes(b []byte) error {
	if e.opts.Binary == BinaryRaw {
		e.buf.WriteByte('[')
		for i, c := range b {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.buf.WriteString(strconv.Itoa(int(c)))
		}
		e.buf.WriteByte(']')
		return nil
	}
	return e.encodeString(base64.StdEncoding.EncodeToString(b))
}

func (e *encoder) encodeStruct(v reflect.Value) error {
	e.depth++
	defer func() { e.depth-- }()

	e.buf.WriteByte('{')
	first := true
	for _, f := range cachedFields(v.Type()) {
		fv, ok := fieldByIndex(v, f.index, false)
		if !ok || (f.omitEmpty && isEmptyValue(fv)) {
			continue
		}
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		if err := e.encodeString(encodeKey(f.name, e.opts.Keys)); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		if err := e.encode(fv); err != nil {
			return atKey(err, f.name)
		}
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) encodeMap(v reflect.Value) error {
	if v.IsNil() {
		e.buf.WriteString("null")
		return nil
	}
	e.depth++
	defer func() { e.depth-- }()

	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := mapKeyString(iter.Key())
		if err != nil {
			return err
		}
		entries = append(entries, entry{key: key, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	e.buf.WriteByte('{')
	for i, en := range entries {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := e.encodeString(en.key); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		if err := e.encode(en.val); err != nil {
			return atKey(err, en.key)
		}
	}
	e.buf.WriteByte('}')
	return nil
}

func mapKeyString(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if k.Type().Implements(textMarshalerType) {
		if k.Kind() == reflect.Pointer && k.IsNil() {
			return "", nil
		}
		text, err := k.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", encodeErrorf("map key %s: %v", k.Type(), err)
		}
		return string(text), nil
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", encodeErrorf("unsupported map key type %s", k.Type())
}

func (e *encoder) encodeArray(v reflect.Value) error {
	e.depth++
	defer func() { e.depth-- }()

	e.buf.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := e.encode(v.Index(i)); err != nil {
			return atIndex(err, i)
		}
	}
	e.buf.WriteByte(']')
	return nil
}

// isCustomByte reports whether a uint8-kinded element type brings its own
// JSON encoding, in which case the slice is written as a plain array.
func isCustomByte(t reflect.Type) bool {
	return t.Implements(marshalerType) || t.Implements(textMarshalerType) ||
		reflect.PointerTo(t).Implements(unmarshalerType)
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
