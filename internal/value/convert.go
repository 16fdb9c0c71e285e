package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// From converts a host value into a Value.
//
// Supported inputs:
//   - nil as Null; Value and Valuer as-is
//   - bool, string, every Go numeric type and json.Number
//   - func(Value) bool as Func
//   - []any, map[string]any and map[any]any as produced by JSON/YAML decoders
//   - time.Time and fmt.Stringer as Opaque
//   - via reflection: pointers, slices, arrays, string-keyed maps and structs
//     (exported fields, named by their json tag when present)
//
// Anything else becomes Opaque with its fmt.Sprint text.
func From(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null{}
	case Value:
		return x
	case Valuer:
		return x.Value()
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return String(x.String())
		}
		return Number(f)
	case func(Value) bool:
		return Func(x)
	case []any:
		arr := make(Array, len(x))
		for i, elem := range x {
			arr[i] = From(elem)
		}
		return arr
	case map[string]any:
		obj := make(Object, len(x))
		for k, elem := range x {
			obj[k] = From(elem)
		}
		return obj
	case map[any]any:
		obj := make(Object, len(x))
		for k, elem := range x {
			obj[fmt.Sprint(k)] = From(elem)
		}
		return obj
	case time.Time:
		return Opaque{Text: x.Format(time.RFC3339Nano), Host: x}
	case fmt.Stringer:
		return Opaque{Text: x.String(), Host: x}
	}

	if f, ok := toFloat64(v); ok {
		return Number(f)
	}

	return fromReflect(reflect.ValueOf(v))
}

// toFloat64 converts supported numeric values to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Invalid:
		return Null{}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}
		}
		return From(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.String:
		return String(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	case reflect.Slice:
		if rv.IsNil() {
			return Null{}
		}
		fallthrough
	case reflect.Array:
		arr := make(Array, rv.Len())
		for i := range arr {
			arr[i] = From(rv.Index(i).Interface())
		}
		return arr
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return Null{}
		}
		obj := make(Object, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			obj[iter.Key().String()] = From(iter.Value().Interface())
		}
		return obj
	case reflect.Struct:
		return fromStruct(rv)
	case reflect.Func:
		// Host functions are not data and cannot be called as predicates.
		return Func(nil)
	}

	return Opaque{Text: fmt.Sprint(rv.Interface()), Host: rv.Interface()}
}

func fromStruct(rv reflect.Value) Object {
	t := rv.Type()
	obj := make(Object, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		obj[name] = From(rv.Field(i).Interface())
	}
	return obj
}

// ParseJSON decodes a JSON document into a Value.
func ParseJSON(data []byte) (Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse JSON value: %w", err)
	}
	return From(raw), nil
}

// ParseYAML decodes a YAML document into a Value. JSON is valid YAML, so
// this also accepts JSON input.
func ParseYAML(data []byte) (Value, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML value: %w", err)
	}
	return From(raw), nil
}

// Interface converts v back into plain Go values (nil, bool, float64,
// string, []any, map[string]any). Missing and Func have no host form and
// convert to nil; Opaque converts to its text.
func Interface(v Value) any {
	switch x := v.(type) {
	case Bool:
		return bool(x)
	case Number:
		return float64(x)
	case String:
		return string(x)
	case Array:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = Interface(elem)
		}
		return out
	case Object:
		out := make(map[string]any, len(x))
		for k, elem := range x {
			out[k] = Interface(elem)
		}
		return out
	case Opaque:
		return x.Text
	default:
		return nil
	}
}
