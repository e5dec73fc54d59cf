package codec

import (
	"bytes"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rskv-p/stuff/constant"
)

// parse reads data into a generic tree of map[string]any, []any, string,
// json.Number, bool and nil.
func parse(data []byte, o *Options) (any, error) {
	if !utf8.Valid(data) {
		return nil, decodeErrorf("input is not valid UTF-8")
	}
	dec := o.Engine.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, decodeErrorf("empty input")
		}
		return nil, decodeErrorf("%v", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, decodeErrorf("unexpected data after top-level value")
	}
	return normalize(node), nil
}

// normalize maps engine-specific number types onto json.Number.
func normalize(node any) any {
	switch x := node.(type) {
	case map[string]any:
		for k, v := range x {
			x[k] = normalize(v)
		}
		return x
	case []any:
		for i, v := range x {
			x[i] = normalize(v)
		}
		return x
	case nil, bool, string, json.Number:
		return x
	case float64:
		return json.Number(strconv.FormatFloat(x, 'g', -1, 64))
	case fmtStringer:
		return json.Number(x.String())
	}
	return node
}

type fmtStringer interface{ String() string }

// selectPath walks a dotted key path through nested objects.
func selectPath(node any, path string) (any, error) {
	if path == "" {
		return node, nil
	}
	cur := node
	for _, seg := range strings.Split(path, constant.KeyPathSep) {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, decodeKeyPathErr(path, seg, "parent is "+jsonKind(cur))
		}
		next, ok := obj[seg]
		if !ok {
			return nil, decodeKeyPathErr(path, seg, "missing key")
		}
		cur = next
	}
	return cur, nil
}

func decodeKeyPathErr(path, seg, why string) error {
	return &keyPathError{path: path, seg: seg, why: why}
}

type keyPathError struct {
	path, seg, why string
}

func (e *keyPathError) Error() string {
	return constant.ErrKeyPath.Error() + ": " + strconv.Quote(e.path) + " at segment " + strconv.Quote(e.seg) + ": " + e.why
}

func (e *keyPathError) Unwrap() error { return constant.ErrKeyPath }

type decoder struct {
	opts *Options
}

func (d *decoder) decode(node any, v reflect.Value) error {
	t := v.Type()

	if t.Kind() == reflect.Pointer {
		if node == nil {
			v.Set(reflect.Zero(t))
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return d.decode(node, v.Elem())
	}

	switch {
	case t == timeType:
		if node == nil {
			return nil
		}
		return d.decodeTime(node, v)
	case t == numberType:
		return d.decodeNumberLiteral(node, v)
	case reflect.PointerTo(t).Implements(unmarshalerType) && v.CanAddr():
		raw, err := json.Marshal(node)
		if err != nil {
			return decodeErrorf("%v", err)
		}
		if err := v.Addr().Interface().(json.Unmarshaler).UnmarshalJSON(raw); err != nil {
			return decodeErrorf("%s.UnmarshalJSON: %v", t, err)
		}
		return nil
	}

	if node == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Map, reflect.Slice:
			v.Set(reflect.Zero(t))
		}
		return nil
	}

	if s, ok := node.(string); ok && v.CanAddr() && reflect.PointerTo(t).Implements(textUnmarshalerType) {
		if err := v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return decodeErrorf("%s.UnmarshalText: %v", t, err)
		}
		return nil
	}

	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() != 0 {
			return mismatch(node, t)
		}
		v.Set(reflect.ValueOf(d.generic(node)))
	case reflect.Bool:
		b, ok := node.(bool)
		if !ok {
			return mismatch(node, t)
		}
		v.SetBool(b)
	case reflect.String:
		s, ok := node.(string)
		if !ok {
			return mismatch(node, t)
		}
		v.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := node.(json.Number)
		if !ok {
			return mismatch(node, t)
		}
		i, err := strconv.ParseInt(string(n), 10, t.Bits())
		if err != nil {
			return decodeErrorf("number %s does not fit Go %s", n, t)
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, ok := node.(json.Number)
		if !ok {
			return mismatch(node, t)
		}
		u, err := strconv.ParseUint(string(n), 10, t.Bits())
		if err != nil {
			return decodeErrorf("number %s does not fit Go %s", n, t)
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		return d.decodeFloat(node, v)
	case reflect.Struct:
		return d.decodeStruct(node, v)
	case reflect.Map:
		return d.decodeMap(node, v)
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 && !isCustomByte(t.Elem()) {
			return d.decodeBytes(node, v)
		}
		arr, ok := node.([]any)
		if !ok {
			return mismatch(node, t)
		}
		s := reflect.MakeSlice(t, len(arr), len(arr))
		for i := range arr {
			if err := d.decode(arr[i], s.Index(i)); err != nil {
				return atIndex(err, i)
			}
		}
		v.Set(s)
	case reflect.Array:
		arr, ok := node.([]any)
		if !ok {
			return mismatch(node, t)
		}
		for i := 0; i < v.Len(); i++ {
			if i >= len(arr) {
				v.Index(i).Set(reflect.Zero(t.Elem()))
				continue
			}
			if err := d.decode(arr[i], v.Index(i)); err != nil {
				return atIndex(err, i)
			}
		}
	default:
		return decodeErrorf("unsupported target type %s", t)
	}
	return nil
}

func (d *decoder) decodeStruct(node any, v reflect.Value) error {
	obj, ok := node.(map[string]any)
	if !ok {
		return mismatch(node, v.Type())
	}
	fields := cachedFields(v.Type())
	for _, key := range sortedKeys(obj) {
		f, ok := lookupField(fields, key, d.opts.Keys)
		if !ok {
			continue
		}
		fv, ok := fieldByIndex(v, f.index, true)
		if !ok || !fv.CanSet() {
			continue
		}
		if err := d.decode(obj[key], fv); err != nil {
			return atKey(err, key)
		}
	}
	return nil
}

func (d *decoder) decodeMap(node any, v reflect.Value) error {
	t := v.Type()
	obj, ok := node.(map[string]any)
	if !ok {
		return mismatch(node, t)
	}
	if v.IsNil() {
		v.Set(reflect.MakeMapWithSize(t, len(obj)))
	}
	for _, key := range sortedKeys(obj) {
		kv, err := mapKey(key, t.Key())
		if err != nil {
			return atKey(err, key)
		}
		elem := reflect.New(t.Elem()).Elem()
		if err := d.decode(obj[key], elem); err != nil {
			return atKey(err, key)
		}
		v.SetMapIndex(kv, elem)
	}
	return nil
}

func mapKey(key string, kt reflect.Type) (reflect.Value, error) {
	if reflect.PointerTo(kt).Implements(textUnmarshalerType) {
		kv := reflect.New(kt)
		if err := kv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(key)); err != nil {
			return reflect.Value{}, decodeErrorf("map key %q: %v", key, err)
		}
		return kv.Elem(), nil
	}
	switch kt.Kind() {
	case reflect.String:
		return reflect.ValueOf(key).Convert(kt), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(key, 10, kt.Bits())
		if err != nil {
			return reflect.Value{}, decodeErrorf("map key %q is not a Go %s", key, kt)
		}
		return reflect.ValueOf(i).Convert(kt), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(key, 10, kt.Bits())
		if err != nil {
			return reflect.Value{}, decodeErrorf("map key %q is not a Go %s", key, kt)
		}
		return reflect.ValueOf(u).Convert(kt), nil
	}
	return reflect.Value{}, decodeErrorf("unsupported map key type %s", kt)
}

func (d *decoder) decodeFloat(node any, v reflect.Value) error {
	switch x := node.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(x), v.Type().Bits())
		if err != nil {
			return decodeErrorf("number %s does not fit Go %s", x, v.Type())
		}
		v.SetFloat(f)
		return nil
	case string:
		if d.opts.NonFinite == NonFiniteAsString {
			switch x {
			case constant.NaNString:
				v.SetFloat(math.NaN())
				return nil
			case constant.PosInfString:
				v.SetFloat(math.Inf(1))
				return nil
			case constant.NegInfString:
				v.SetFloat(math.Inf(-1))
				return nil
			}
		}
	}
	return mismatch(node, v.Type())
}

func (d *decoder) decodeNumberLiteral(node any, v reflect.Value) error {
	switch x := node.(type) {
	case nil:
		return nil
	case json.Number:
		v.SetString(string(x))
		return nil
	case string:
		if _, err := json.Number(x).Float64(); err == nil {
			v.SetString(x)
			return nil
		}
	}
	return mismatch(node, v.Type())
}

func (d *decoder) decodeBytes(node any, v reflect.Value) error {
	var b []byte
	switch x := node.(type) {
	case string:
		if d.opts.Binary != BinaryBase64 {
			return mismatch(node, v.Type())
		}
		var err error
		b, err = base64.StdEncoding.DecodeString(x)
		if err != nil {
			return decodeErrorf("invalid base64 data: %v", err)
		}
	case []any:
		if d.opts.Binary != BinaryRaw {
			return mismatch(node, v.Type())
		}
		b = make([]byte, len(x))
		for i, item := range x {
			n, ok := item.(json.Number)
			if !ok {
				return atIndex(mismatch(item, v.Type().Elem()), i)
			}
			u, err := strconv.ParseUint(string(n), 10, 8)
			if err != nil {
				return atIndex(decodeErrorf("number %s is not a byte", n), i)
			}
			b[i] = byte(u)
		}
	default:
		return mismatch(node, v.Type())
	}
	v.SetBytes(b)
	return nil
}

func (d *decoder) decodeTime(node any, v reflect.Value) error {
	var (
		t   time.Time
		err error
	)
	switch ds := d.opts.Dates; ds.kind {
	case dateEpochSeconds, dateEpochMillis:
		n, ok := node.(json.Number)
		if !ok {
			return mismatch(node, v.Type())
		}
		if ds.kind == dateEpochMillis {
			t, err = parseEpochMillis(string(n))
		} else {
			t, err = parseEpochSeconds(string(n))
		}
	default:
		s, ok := node.(string)
		if !ok {
			return mismatch(node, v.Type())
		}
		layout := time.RFC3339Nano
		if ds.kind == dateFormatted || ds.kind == dateISO8601 {
			layout = ds.layout
		}
		t, err = time.Parse(layout, s)
	}
	if err != nil {
		return decodeErrorf("invalid date: %v", err)
	}
	v.Set(reflect.ValueOf(t))
	return nil
}

func parseEpochSeconds(s string) (time.Time, error) {
	if strings.ContainsAny(s, "eE-") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, err
		}
		sec := math.Floor(f)
		return time.Unix(int64(sec), int64(math.Round((f-sec)*1e9))).UTC(), nil
	}

	intPart, frac, _ := strings.Cut(s, ".")
	sec, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	var nsec int64
	if frac != "" {
		if len(frac) > 9 {
			frac = frac[:9]
		}
		nsec, err = strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Unix(sec, nsec).UTC(), nil
}

func parseEpochMillis(s string) (time.Time, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMicro(int64(math.Round(f * 1e3))).UTC(), nil
}

// generic converts a parsed tree for storage in an interface value.
func (d *decoder) generic(node any) any {
	switch x := node.(type) {
	case json.Number:
		if d.opts.UseNumber {
			return x
		}
		f, _ := x.Float64()
		return f
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, v := range x {
			out[k] = d.generic(v)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, v := range x {
			out[i] = d.generic(v)
		}
		return out
	}
	return node
}

func mismatch(node any, t reflect.Type) error {
	return decodeErrorf("cannot decode JSON %s into Go %s", jsonKind(node), t)
}

func jsonKind(node any) string {
	switch node.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return "value"
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
