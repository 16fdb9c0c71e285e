package value

import "slices"

// Value is a sealed interface over the dynamic value variants.
// Only Missing, Null, Bool, Number, String, Array, Object, Func and Opaque
// implement it.
type Value interface {
	value() // Sealed
}

// Valuer is implemented by domain records that can be matched and sorted
// as dynamic values.
type Valuer interface {
	Value() Value
}

// Missing is the absent value: a key that is not present, or an argument
// that was not supplied. It is distinct from Null.
type Missing struct{}

func (Missing) value() {}

// Null is an explicit null.
type Null struct{}

func (Null) value() {}

// Bool is a boolean value.
type Bool bool

func (Bool) value() {}

// Number is a numeric value. All host numerics collapse into float64.
type Number float64

func (Number) value() {}

// String is a string value.
type String string

func (String) value() {}

// Array is an ordered sequence of values.
type Array []Value

func (Array) value() {}

// Object maps string keys to values.
// Use SortedKeys() for deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// Func is a predicate. As an expression it is used directly; as data it
// never matches anything.
type Func func(Value) bool

func (Func) value() {}

// Opaque is a host value that has a custom string form but no enumerable
// properties (timestamps, identifiers implementing fmt.Stringer).
type Opaque struct {
	Text string
	Host any
}

func (Opaque) value() {}

// Kind classifies a value by variant.
type Kind int

const (
	KindMissing Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindFunc
	KindOpaque
)

var kindNames = [...]string{
	KindMissing: "missing",
	KindNull:    "null",
	KindBool:    "boolean",
	KindNumber:  "number",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
	KindFunc:    "function",
	KindOpaque:  "opaque",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// KindOf returns the variant of v. A nil interface is Missing.
func KindOf(v Value) Kind {
	switch v.(type) {
	case Null:
		return KindNull
	case Bool:
		return KindBool
	case Number:
		return KindNumber
	case String:
		return KindString
	case Array:
		return KindArray
	case Object:
		return KindObject
	case Func:
		return KindFunc
	case Opaque:
		return KindOpaque
	default:
		return KindMissing
	}
}

// IsObjectLike reports whether v is a composite or callable value: an
// Object, Array, Func or Opaque. Everything else is a primitive.
func IsObjectLike(v Value) bool {
	switch KindOf(v) {
	case KindObject, KindArray, KindFunc, KindOpaque:
		return true
	default:
		return false
	}
}

// Get returns obj[key], or Missing when obj is not an Object or has no
// such key.
func Get(obj Value, key string) Value {
	o, ok := obj.(Object)
	if !ok {
		return Missing{}
	}
	v, ok := o[key]
	if !ok || v == nil {
		return Missing{}
	}
	return v
}

// SortedKeys returns keys in UTF-16 code unit order.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysUTF16)
	return keys
}
