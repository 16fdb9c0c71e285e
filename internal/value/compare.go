package value

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Equal reports deep structural equality. Variants must match; objects
// must have the same keys with equal values; arrays must have equal
// elements in order. Func values are never equal. NaN equals NaN.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		if !ok {
			return false
		}
		if math.IsNaN(float64(x)) && math.IsNaN(float64(y)) {
			return true
		}
		return x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Object:
		y, ok := b.(Object)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	case Opaque:
		y, ok := b.(Opaque)
		return ok && x.Text == y.Text
	case Func:
		return false
	default:
		return KindOf(b) == KindMissing
	}
}

// Compare orders two values for sorting. Numbers compare numerically,
// strings lexically, false sorts before true. Values of different kinds
// are ordered by kind, with Missing and Null after everything else.
// Composite values of the same kind compare equal.
func Compare(a, b Value) int {
	ra, rb := sortRank(a), sortRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch x := a.(type) {
	case Number:
		y := b.(Number)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case String:
		return strings.Compare(string(x), string(b.(String)))
	case Bool:
		y := b.(Bool)
		switch {
		case x == y:
			return 0
		case !bool(x):
			return -1
		}
		return 1
	case Opaque:
		return strings.Compare(x.Text, b.(Opaque).Text)
	}
	return 0
}

func sortRank(v Value) int {
	switch KindOf(v) {
	case KindNumber:
		return 0
	case KindString:
		return 1
	case KindBool:
		return 2
	case KindOpaque:
		return 3
	case KindArray, KindObject, KindFunc:
		return 4
	case KindNull:
		return 5
	default:
		return 6
	}
}

// Text returns the string form used when a value is compared as text.
// Objects and functions have no text form.
func Text(v Value) (string, bool) {
	switch x := v.(type) {
	case Missing:
		return "", true
	case String:
		return string(x), true
	case Number:
		return FormatNumber(float64(x)), true
	case Bool:
		return strconv.FormatBool(bool(x)), true
	case Opaque:
		return x.Text, true
	case Array:
		parts := make([]string, 0, len(x))
		for _, elem := range x {
			switch KindOf(elem) {
			case KindMissing, KindNull:
				parts = append(parts, "")
				continue
			}
			s, ok := Text(elem)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), true
	default:
		return "", false
	}
}

// FormatNumber renders f in its shortest decimal form: 4, 4.5, 1e+21.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) < 1e21 && (f == math.Trunc(f) || math.Abs(f) >= 1e-6):
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// compareKeysUTF16 compares strings by UTF-16 code units.
// Go's native string comparison orders by UTF-8 bytes, which differs for
// characters outside the BMP.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}
