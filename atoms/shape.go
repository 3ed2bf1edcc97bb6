package atoms

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
)

// Shape is the input form of a property value.
type Shape int

const (
	// ShapeScalar is a bare value, applied to the default condition.
	ShapeScalar Shape = iota
	// ShapeList is a positional list aligned to the responsive array.
	ShapeList
	// ShapeMapping maps condition names to values.
	ShapeMapping
)

func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeMapping:
		return "mapping"
	}
	return "scalar"
}

// Responsive is a value given per position of the responsive array. A nil
// entry leaves that condition unset.
type Responsive []any

// Conditional is a value given per condition name. A nil entry marks the
// condition as explicitly unset.
type Conditional map[string]any

// ShapeOf inspects raw once: lists first (any slice or array), then
// string-keyed maps, everything else is a scalar.
func ShapeOf(raw any) Shape {
	switch raw.(type) {
	case nil, string, int, int64, float64, bool:
		return ShapeScalar
	case Responsive, []any, []string, []int, []float64:
		return ShapeList
	case Conditional, map[string]any, map[string]string:
		return ShapeMapping
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return ShapeList
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return ShapeMapping
		}
	}
	return ShapeScalar
}

// FormatValue renders a scalar the way it is keyed in a configuration:
// 0 -> "0", 1.5 -> "1.5", "flex" -> "flex".
func FormatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

func listLen(raw any) int {
	switch l := raw.(type) {
	case Responsive:
		return len(l)
	case []any:
		return len(l)
	case []string:
		return len(l)
	}
	return reflect.ValueOf(raw).Len()
}

func listAt(raw any, i int) any {
	switch l := raw.(type) {
	case Responsive:
		return l[i]
	case []any:
		return l[i]
	case []string:
		return l[i]
	}
	return unwrap(reflect.ValueOf(raw).Index(i))
}

func lookupMapping(raw any, key string) (any, bool) {
	switch m := raw.(type) {
	case Conditional:
		v, ok := m[key]
		return v, ok
	case map[string]any:
		v, ok := m[key]
		return v, ok
	case map[string]string:
		v, ok := m[key]
		return v, ok
	}
	rv := reflect.ValueOf(raw)
	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return unwrap(v), true
}

// firstUnknownKey returns the smallest mapping key that is not a declared
// condition, so rejections do not depend on map iteration order.
func firstUnknownKey(raw any, c *Conditions) (string, bool) {
	var (
		bad   string
		found bool
	)
	check := func(k string) {
		if !c.Has(k) && (!found || k < bad) {
			bad, found = k, true
		}
	}
	switch m := raw.(type) {
	case Conditional:
		for k := range m {
			check(k)
		}
	case map[string]any:
		for k := range m {
			check(k)
		}
	case map[string]string:
		for k := range m {
			check(k)
		}
	default:
		iter := reflect.ValueOf(raw).MapRange()
		for iter.Next() {
			check(iter.Key().String())
		}
	}
	return bad, found
}

func unwrap(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface()
}

func conditionNames(c *Conditions) []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.Names)
}
