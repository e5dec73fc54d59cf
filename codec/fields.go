package codec

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"
)

// field describes one JSON-visible struct field.
type field struct {
	name      string
	index     []int
	typ       reflect.Type
	omitEmpty bool
	tagged    bool
}

var fieldCache sync.Map // reflect.Type -> []field

// cachedFields returns the JSON-visible fields of t in declaration order,
// with embedded struct fields promoted the way encoding/json does.
func cachedFields(t reflect.Type) []field {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]field)
	}
	f, _ := fieldCache.LoadOrStore(t, typeFields(t))
	return f.([]field)
}

func typeFields(t reflect.Type) []field {
	var (
		out   []field
		depth = map[string]int{}
	)
	var walk func(t reflect.Type, index []int, level int)
	walk = func(t reflect.Type, index []int, level int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			tag := sf.Tag.Get("json")
			if tag == "-" {
				continue
			}
			name, opts, _ := strings.Cut(tag, ",")

			ft := sf.Type
			if sf.Anonymous {
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if name == "" && ft.Kind() == reflect.Struct {
					walk(ft, appendIndex(index, i), level+1)
					continue
				}
				if !sf.IsExported() {
					continue
				}
			} else if !sf.IsExported() {
				continue
			}

			tagged := name != ""
			if name == "" {
				name = sf.Name
			}
			f := field{
				name:      name,
				index:     appendIndex(index, i),
				typ:       sf.Type,
				omitEmpty: strings.Contains(","+opts+",", ",omitempty,"),
				tagged:    tagged,
			}

			// shallower fields win; at equal depth the first one stays
			if d, seen := depth[name]; seen {
				if level < d {
					for j := range out {
						if out[j].name == name {
							out[j] = f
						}
					}
					depth[name] = level
				}
				continue
			}
			depth[name] = level
			out = append(out, f)
		}
	}
	walk(t, nil, 0)
	sort.SliceStable(out, func(i, j int) bool { return lessIndex(out[i].index, out[j].index) })
	return out
}

func lessIndex(a, b []int) bool {
	for k := 0; k < len(a) && k < len(b); k++ {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return len(a) < len(b)
}

func appendIndex(index []int, i int) []int {
	out := make([]int, len(index)+1)
	copy(out, index)
	out[len(index)] = i
	return out
}

// lookupField finds the field a JSON key belongs to: exact name first,
// then case-insensitive, then (for snake_case input) the camelCase form.
func lookupField(fields []field, key string, keys KeyCasing) (field, bool) {
	for _, f := range fields {
		if f.name == key {
			return f, true
		}
	}
	for _, f := range fields {
		if strings.EqualFold(f.name, key) {
			return f, true
		}
	}
	if keys == KeysSnakeCase {
		camel := strcase.ToLowerCamel(key)
		for _, f := range fields {
			if strings.EqualFold(f.name, camel) {
				return f, true
			}
		}
	}
	return field{}, false
}

// encodeKey applies the configured key casing to a field name.
func encodeKey(name string, keys KeyCasing) string {
	if keys == KeysSnakeCase {
		return strcase.ToSnake(name)
	}
	return name
}

// fieldByIndex walks index, allocating nil embedded pointers when alloc is set.
// It reports false when a nil embedded pointer blocks the path.
func fieldByIndex(v reflect.Value, index []int, alloc bool) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc || !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}
