package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/hotels/internal/value"
)

// Comparator decides whether an actual leaf value matches an expected one.
type Comparator func(actual, expected value.Value) bool

// Equals is the exact comparator: deep structural equality.
func Equals(actual, expected value.Value) bool {
	return value.Equal(actual, expected)
}

// Substring is the default comparator.
//
// Rules, in order:
//   - a Missing actual never matches
//   - Null only matches Null
//   - an object-like expected never matches
//   - an Object or Func actual never matches; an Opaque actual is compared
//     by its text
//   - otherwise both sides are lower-cased and actual must contain expected
func Substring(actual, expected value.Value) bool {
	actualKind, expectedKind := value.KindOf(actual), value.KindOf(expected)

	if actualKind == value.KindMissing {
		return false
	}
	if actualKind == value.KindNull || expectedKind == value.KindNull {
		return actualKind == expectedKind
	}
	if value.IsObjectLike(expected) {
		return false
	}

	actualText, ok := value.Text(actual)
	if !ok {
		return false
	}
	expectedText, _ := value.Text(expected)

	return strings.Contains(lower(actualText), lower(expectedText))
}

// lower normalizes s for case-insensitive comparison.
// A cases.Caser is stateful, so one is created per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}
