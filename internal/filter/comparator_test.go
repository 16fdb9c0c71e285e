package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/hotels/internal/value"
)

func TestSubstring(t *testing.T) {
	testCases := []struct {
		name     string
		actual   value.Value
		expected value.Value
		want     bool
	}{
		{"contains", value.String("Grand Hotel"), value.String("d h"), true},
		{"case insensitive", value.String("GRAND"), value.String("grand"), true},
		{"unicode case", value.String("ÉCOLE"), value.String("école"), true},
		{"not contained", value.String("Grand"), value.String("hotel"), false},
		{"missing actual", value.Missing{}, value.String(""), false},
		{"null both", value.Null{}, value.Null{}, true},
		{"null actual", value.Null{}, value.String("null"), false},
		{"null expected", value.String("null"), value.Null{}, false},
		{"object expected", value.String("a"), value.Object{}, false},
		{"array expected", value.String("a"), value.Array{}, false},
		{"object actual", value.Object{"a": value.String("a")}, value.String("a"), false},
		{"func actual", value.Func(nil), value.String(""), false},
		{"opaque actual", value.Opaque{Text: "Room-12"}, value.String("room"), true},
		{"number actual", value.Number(450), value.String("45"), true},
		{"number both", value.Number(3), value.Number(3), true},
		{"bool actual", value.Bool(true), value.String("ru"), true},
		{"missing expected matches anything", value.String("a"), value.Missing{}, true},
		{"empty expected", value.String("a"), value.String(""), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Substring(tc.actual, tc.expected))
		})
	}
}
