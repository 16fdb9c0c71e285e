package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces deterministic JSON for v:
//  1. Object keys sorted by UTF-16 code units
//  2. No HTML escaping
//  3. Strings NFC normalized
//  4. Numbers in shortest decimal form
//
// Missing, Func, NaN and infinities have no JSON form and return an error.
// Opaque values serialize as their text.
func MarshalCanonical(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v Value) error {
	switch x := v.(type) {
	case Null:
		buf.WriteString("null")
	case Bool:
		if x {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("number %v has no JSON form", f)
		}
		buf.WriteString(FormatNumber(f))
	case String:
		return writeCanonicalString(buf, string(x))
	case Opaque:
		return writeCanonicalString(buf, x.Text)
	case Array:
		buf.WriteByte('[')
		for i, elem := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		first := true
		for _, k := range x.SortedKeys() {
			elem := x[k]
			// Absent values are omitted, as JSON.stringify drops undefined.
			if KindOf(elem) == KindMissing {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeCanonicalString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("[%q]: %w", k, err)
			}
		}
		buf.WriteByte('}')
	case Func:
		return fmt.Errorf("function values have no JSON form")
	default:
		return fmt.Errorf("missing value has no JSON form")
	}
	return nil
}

func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	// json.Encoder adds a trailing newline.
	buf.Write(bytes.TrimSuffix(out.Bytes(), []byte{'\n'}))
	return nil
}
