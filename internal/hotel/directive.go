package hotel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirective is returned for sort directives without a field.
var ErrInvalidDirective = errors.New("invalid sort directive")

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Ascending {
		return "ASC"
	}
	return "DESC"
}

// Directive is a parsed "field-DIR" sort instruction.
type Directive struct {
	Field     string
	Direction Direction
}

// ParseDirective parses "field-ASC" or "field-DESC". The direction is the
// second dash-separated segment; anything other than "ASC", including a
// missing segment, sorts descending.
func ParseDirective(s string) (Directive, error) {
	parts := strings.Split(s, "-")
	field := strings.TrimSpace(parts[0])
	if field == "" {
		return Directive{}, fmt.Errorf("%w: %q", ErrInvalidDirective, s)
	}

	d := Directive{Field: field, Direction: Descending}
	if len(parts) > 1 && parts[1] == "ASC" {
		d.Direction = Ascending
	}
	return d, nil
}

func (d Directive) String() string {
	return d.Field + "-" + d.Direction.String()
}
