// Package pipes holds small display transforms used when rendering
// listings.
package pipes

import (
	"math"
	"strconv"
	"strings"

	"github.com/roach88/hotels/internal/value"
)

// maxRange caps NumberToArray so a malformed input cannot allocate
// unbounded memory.
const maxRange = 1 << 16

// NumberToArray returns [0, 1, ..., k-1] where k is the count of integers
// i >= 0 with i < n. Numeric strings are parsed; any other value, or
// n <= 0, yields an empty slice.
func NumberToArray(v value.Value) []int {
	n, ok := toNumber(v)
	if !ok || math.IsNaN(n) || n <= 0 {
		return []int{}
	}

	count := int(math.Min(math.Ceil(n), maxRange))
	out := make([]int, count)
	for i := range out {
		out[i] = i
	}
	return out
}

func toNumber(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case value.Number:
		return float64(x), true
	case value.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case value.Bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
