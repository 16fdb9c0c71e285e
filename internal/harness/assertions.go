package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/hotels/internal/hotel"
)

// AssertionError is returned when an expectation fails.
type AssertionError struct {
	Where    string // "events[2].expect" or "expect"
	Field    string // ids, names, count or error
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s.%s: expected %s, got %s", e.Where, e.Field, e.Expected, e.Actual)
}

// checkEvent verifies one traced event. An event without an error
// expectation must not have failed.
func checkEvent(index int, ev TraceEvent, expect *ExpectClause, visible []hotel.Hotel) []*AssertionError {
	where := fmt.Sprintf("events[%d].expect", index)

	if expect == nil {
		if ev.Error != "" {
			return []*AssertionError{{
				Where:    where,
				Field:    "error",
				Expected: "no error",
				Actual:   fmt.Sprintf("%q", ev.Error),
			}}
		}
		return nil
	}

	failures := checkExpect(where, *expect, visible)

	switch {
	case expect.Error == "" && ev.Error != "":
		failures = append(failures, &AssertionError{
			Where:    where,
			Field:    "error",
			Expected: "no error",
			Actual:   fmt.Sprintf("%q", ev.Error),
		})
	case expect.Error != "" && !strings.Contains(ev.Error, expect.Error):
		actual := "no error"
		if ev.Error != "" {
			actual = fmt.Sprintf("%q", ev.Error)
		}
		failures = append(failures, &AssertionError{
			Where:    where,
			Field:    "error",
			Expected: fmt.Sprintf("error containing %q", expect.Error),
			Actual:   actual,
		})
	}

	return failures
}

// checkExpect compares the visible list with the ids, names and count
// expectations.
func checkExpect(where string, expect ExpectClause, visible []hotel.Hotel) []*AssertionError {
	var failures []*AssertionError

	if expect.IDs != nil {
		got := hotelIDs(visible)
		if !slices.Equal(expect.IDs, got) {
			failures = append(failures, &AssertionError{
				Where:    where,
				Field:    "ids",
				Expected: formatList(expect.IDs),
				Actual:   formatList(got),
			})
		}
	}

	if expect.Names != nil {
		got := make([]string, len(visible))
		for i, h := range visible {
			got[i] = h.Name
		}
		if !slices.Equal(expect.Names, got) {
			failures = append(failures, &AssertionError{
				Where:    where,
				Field:    "names",
				Expected: formatList(expect.Names),
				Actual:   formatList(got),
			})
		}
	}

	if expect.Count != nil && *expect.Count != len(visible) {
		failures = append(failures, &AssertionError{
			Where:    where,
			Field:    "count",
			Expected: fmt.Sprint(*expect.Count),
			Actual:   fmt.Sprint(len(visible)),
		})
	}

	return failures
}

func formatList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
