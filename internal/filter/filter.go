package filter

import (
	"strconv"
	"strings"

	"github.com/roach88/hotels/internal/value"
)

// internalKeyPrefix marks properties skipped by any-property scans.
const internalKeyPrefix = "$"

// exprClass is the shape of a query expression, computed once per call.
type exprClass int

const (
	exprOther exprClass = iota
	exprFunc
	exprBool
	exprNull
	exprNumber
	exprString
	exprObject
)

func classify(expr value.Value) exprClass {
	switch expr.(type) {
	case value.Func:
		return exprFunc
	case value.Bool:
		return exprBool
	case value.Null:
		return exprNull
	case value.Number:
		return exprNumber
	case value.String:
		return exprString
	case value.Object:
		return exprObject
	default:
		// Arrays, Missing and Opaque expressions do not filter.
		return exprOther
	}
}

// Filter returns the elements of items that match expr.
//
// items must be an Array. Null is returned unchanged. Any other input is
// reported to the configured logger and yields an empty Array.
// When expr is not a recognized expression shape the input is returned
// unchanged.
func Filter(items, expr value.Value, opts ...Option) value.Value {
	cfg := newConfig(opts)

	arr, ok := items.(value.Array)
	if !ok {
		kind := value.KindOf(items)
		if kind == value.KindNull {
			return items
		}
		cfg.logger.Error("filter expected an array", "kind", kind.String())
		return value.Array{}
	}

	match, ok := compile(expr, cfg)
	if !ok {
		return items
	}

	out := make(value.Array, 0, len(arr))
	for _, item := range arr {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Slice filters domain records by matching their Value() against expr.
// The returned slice holds the original elements in their original order.
// A nil slice, or an unrecognized expression, returns items unchanged.
func Slice[T value.Valuer](items []T, expr value.Value, opts ...Option) []T {
	if items == nil {
		return nil
	}

	match, ok := Predicate(expr, opts...)
	if !ok {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item.Value()) {
			out = append(out, item)
		}
	}
	return out
}

// Predicate compiles expr into a match function. It returns false when expr
// is not a recognized expression shape.
func Predicate(expr value.Value, opts ...Option) (func(value.Value) bool, bool) {
	return compile(expr, newConfig(opts))
}

func compile(expr value.Value, cfg config) (func(value.Value) bool, bool) {
	switch classify(expr) {
	case exprFunc:
		fn := expr.(value.Func)
		return func(item value.Value) bool {
			if fn == nil {
				return false
			}
			return fn(orMissing(item))
		}, true
	case exprBool, exprNull, exprNumber, exprString:
		return structuralPredicate(expr, cfg, true), true
	case exprObject:
		return structuralPredicate(expr, cfg, false), true
	default:
		return nil, false
	}
}

// structuralPredicate builds the deep-compare predicate for expr.
// When an Object expression carries the any-property key, primitive items
// are matched against that sub-expression alone, since they have no
// properties to scan.
func structuralPredicate(expr value.Value, cfg config, matchAnyProp bool) func(value.Value) bool {
	cmp, anyKey := cfg.comparator, cfg.anyPropertyKey

	var primitiveExpr value.Value
	matchPrimitives := false
	if obj, ok := expr.(value.Object); ok {
		if sub, present := obj[anyKey]; present {
			primitiveExpr = orMissing(sub)
			matchPrimitives = true
		}
	}

	return func(item value.Value) bool {
		item = orMissing(item)
		if matchPrimitives && !value.IsObjectLike(item) {
			return deepCompare(item, primitiveExpr, cmp, anyKey, false, false)
		}
		return deepCompare(item, expr, cmp, anyKey, matchAnyProp, false)
	}
}

// deepCompare matches actual against expected recursively.
//
// matchAnyProp scans the properties of an object actual for a match before
// falling back to comparing the whole object. dontMatchWholeObject disables
// that fallback; it is set when recursing through the any-property key so
// the scan cannot loop back into itself.
func deepCompare(actual, expected value.Value, cmp Comparator, anyKey string, matchAnyProp, dontMatchWholeObject bool) bool {
	if s, ok := expected.(value.String); ok && strings.HasPrefix(string(s), "!") {
		return !deepCompare(actual, s[1:], cmp, anyKey, matchAnyProp, false)
	}

	switch a := actual.(type) {
	case value.Array:
		for _, elem := range a {
			if deepCompare(orMissing(elem), expected, cmp, anyKey, matchAnyProp, false) {
				return true
			}
		}
		return false

	case value.Object, value.Opaque:
		if matchAnyProp {
			if obj, ok := a.(value.Object); ok {
				for _, key := range obj.SortedKeys() {
					if strings.HasPrefix(key, internalKeyPrefix) {
						continue
					}
					if deepCompare(orMissing(obj[key]), expected, cmp, anyKey, true, false) {
						return true
					}
				}
			}
			if dontMatchWholeObject {
				return false
			}
			return deepCompare(actual, expected, cmp, anyKey, false, false)
		}

		if isPattern(expected) {
			for _, e := range entries(expected) {
				switch value.KindOf(e.value) {
				case value.KindFunc, value.KindMissing:
					continue
				}

				matchAny := e.key == anyKey
				actualVal := actual
				if !matchAny {
					actualVal = value.Get(actual, e.key)
				}
				if !deepCompare(actualVal, e.value, cmp, anyKey, matchAny, matchAny) {
					return false
				}
			}
			return true
		}

		return cmp(actual, expected)

	case value.Func:
		return false

	default:
		return cmp(orMissing(actual), expected)
	}
}

// isPattern reports whether expected is matched key by key rather than as
// a leaf. Every non-null composite qualifies; functions do not.
func isPattern(expected value.Value) bool {
	switch expected.(type) {
	case value.Object, value.Array, value.Opaque:
		return true
	default:
		return false
	}
}

type entry struct {
	key   string
	value value.Value
}

// entries lists the own properties of a pattern. Array elements are keyed
// by their index; Opaque values have none.
func entries(pattern value.Value) []entry {
	switch p := pattern.(type) {
	case value.Object:
		out := make([]entry, 0, len(p))
		for _, k := range p.SortedKeys() {
			out = append(out, entry{key: k, value: orMissing(p[k])})
		}
		return out
	case value.Array:
		out := make([]entry, 0, len(p))
		for i, elem := range p {
			out = append(out, entry{key: strconv.Itoa(i), value: orMissing(elem)})
		}
		return out
	default:
		return nil
	}
}

func orMissing(v value.Value) value.Value {
	if v == nil {
		return value.Missing{}
	}
	return v
}
