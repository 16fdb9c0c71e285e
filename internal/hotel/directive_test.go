package hotel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirective(t *testing.T) {
	testCases := []struct {
		in   string
		want Directive
	}{
		{"price-ASC", Directive{Field: "price", Direction: Ascending}},
		{"price-DESC", Directive{Field: "price", Direction: Descending}},
		{"stars", Directive{Field: "stars", Direction: Descending}},
		{"name-asc", Directive{Field: "name", Direction: Descending}},
		{"name-ASC-extra", Directive{Field: "name", Direction: Ascending}},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDirective(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDirective_Invalid(t *testing.T) {
	for _, in := range []string{"", "-ASC", "  -DESC"} {
		_, err := ParseDirective(in)
		assert.ErrorIs(t, err, ErrInvalidDirective, in)
	}
}

func TestDirectiveString(t *testing.T) {
	assert.Equal(t, "price-ASC", Directive{Field: "price"}.String())
	assert.Equal(t, "stars-DESC", Directive{Field: "stars", Direction: Descending}.String())
}
