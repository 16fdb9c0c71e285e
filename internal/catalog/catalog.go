// Package catalog loads hotel catalogs from JSON, YAML and CUE files and
// validates every record against the #Hotel CUE schema.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/hotels/internal/hotel"
)

//go:embed schema.cue
var schemaSource string

// ErrUnsupportedFormat is returned for files that are not .json, .yaml,
// .yml or .cue.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Format identifies a catalog encoding.
type Format int

const (
	FormatJSON Format = iota + 1
	FormatYAML
	FormatCUE
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatCUE:
		return "cue"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Mode controls how record errors are handled.
type Mode int

const (
	// ModeFailFast stops on the first invalid record.
	ModeFailFast Mode = iota
	// ModeCollectAll validates every record and keeps the valid ones.
	ModeCollectAll
)

// ValidationError describes a record that does not satisfy #Hotel.
type ValidationError struct {
	Index   int    // Position of the record in the catalog
	Field   string // Dotted path within the record, if known
	Message string
	Pos     token.Pos // CUE source position, valid for .cue catalogs
}

func (e *ValidationError) Error() string {
	loc := fmt.Sprintf("hotels[%d]", e.Index)
	if e.Field != "" {
		loc += "." + e.Field
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), loc, e.Message)
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// Catalog is a validated, in-memory hotel list. It implements
// hotel.Source.
type Catalog struct {
	Path   string
	hotels []hotel.Hotel
}

// All returns a copy of the catalog's hotels.
func (c *Catalog) All(ctx context.Context) ([]hotel.Hotel, error) {
	return slices.Clone(c.hotels), nil
}

// Len returns the number of hotels.
func (c *Catalog) Len() int {
	return len(c.hotels)
}

// Load reads and validates the catalog at path, failing on the first
// invalid record.
func Load(path string) (*Catalog, error) {
	c, errs := Check(path, ModeFailFast)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return c, nil
}

// Check reads the catalog at path. In ModeCollectAll every record error
// is returned alongside a catalog of the valid records.
func Check(path string, mode Mode) (*Catalog, []error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, []error{err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{fmt.Errorf("read catalog: %w", err)}
	}

	c, errs := Parse(data, format, path, mode)
	if c != nil {
		c.Path = path
	}
	return c, errs
}

// Parse decodes and validates catalog data. name is used in CUE positions.
func Parse(data []byte, format Format, name string, mode Mode) (*Catalog, []error) {
	cctx := cuecontext.New()

	doc, err := compileDocument(cctx, data, format, name)
	if err != nil {
		return nil, []error{err}
	}
	return build(cctx, doc, mode)
}

// FromDocument validates an already decoded document: a list of records,
// or a map with a "hotels" list.
func FromDocument(doc any, mode Mode) (*Catalog, []error) {
	cctx := cuecontext.New()

	v := cctx.Encode(normalize(doc))
	if err := v.Err(); err != nil {
		return nil, []error{formatCUEError(err)}
	}
	return build(cctx, v, mode)
}

func compileDocument(cctx *cue.Context, data []byte, format Format, name string) (cue.Value, error) {
	switch format {
	case FormatCUE:
		v := cctx.CompileBytes(data, cue.Filename(name))
		if err := v.Err(); err != nil {
			return cue.Value{}, fmt.Errorf("compile catalog: %w", formatCUEError(err))
		}
		return v, nil

	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return cue.Value{}, fmt.Errorf("parse JSON catalog: %w", err)
		}
		return encodeDocument(cctx, doc)

	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return cue.Value{}, fmt.Errorf("parse YAML catalog: %w", err)
		}
		return encodeDocument(cctx, doc)

	default:
		return cue.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func encodeDocument(cctx *cue.Context, doc any) (cue.Value, error) {
	v := cctx.Encode(normalize(doc))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("encode catalog: %w", formatCUEError(err))
	}
	return v, nil
}

// build validates every record of doc against #Hotel and decodes the
// valid ones.
func build(cctx *cue.Context, doc cue.Value, mode Mode) (*Catalog, []error) {
	schema := cctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, []error{fmt.Errorf("compile schema: %w", err)}
	}
	def := schema.LookupPath(cue.ParsePath("#Hotel"))

	list := doc
	if doc.IncompleteKind() != cue.ListKind {
		list = doc.LookupPath(cue.ParsePath("hotels"))
		if !list.Exists() {
			return nil, []error{errors.New("catalog must be a list of hotels or contain a \"hotels\" list")}
		}
	}

	iter, err := list.List()
	if err != nil {
		return nil, []error{fmt.Errorf("catalog hotels: %w", formatCUEError(err))}
	}

	c := &Catalog{}
	var errs []error
	for i := 0; iter.Next(); i++ {
		h, err := decodeRecord(def, iter.Value())
		if err != nil {
			errs = append(errs, toValidationError(i, err))
			if mode == ModeFailFast {
				return nil, errs
			}
			continue
		}
		c.hotels = append(c.hotels, h)
	}
	return c, errs
}

func decodeRecord(def, record cue.Value) (hotel.Hotel, error) {
	unified := def.Unify(record)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return hotel.Hotel{}, err
	}

	var h hotel.Hotel
	if err := unified.Decode(&h); err != nil {
		return hotel.Hotel{}, err
	}
	return h, nil
}

func toValidationError(index int, err error) *ValidationError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Index: index, Message: err.Error()}
	}

	first := errs[0]
	format, args := first.Msg()

	var path []string
	for _, p := range first.Path() {
		// Drop the schema definition and list index selectors.
		if strings.HasPrefix(p, "#") || strings.HasPrefix(p, "hotels") || isIndex(p) {
			continue
		}
		path = append(path, p)
	}

	return &ValidationError{
		Index:   index,
		Field:   strings.Join(path, "."),
		Message: fmt.Sprintf(format, args...),
		Pos:     first.Position(),
	}
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// formatCUEError keeps the first CUE error, which carries position info.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	return errs[0]
}

// normalize converts decoder output into types the CUE encoder accepts:
// json.Number becomes int64 or float64 and non-string map keys are
// stringified.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = normalize(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, elem := range x {
			out[k] = normalize(elem)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, elem := range x {
			out[fmt.Sprint(k)] = normalize(elem)
		}
		return out
	default:
		return v
	}
}
