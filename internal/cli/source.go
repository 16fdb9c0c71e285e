package cli

import (
	"encoding/json"

	"github.com/roach88/hotels/internal/catalog"
	"github.com/roach88/hotels/internal/hotel"
	"github.com/roach88/hotels/internal/store"
	"github.com/roach88/hotels/internal/value"
)

// openSource picks the hotel source for list: a catalog file when path is
// set, otherwise the database. The returned close func is never nil.
func openSource(f *OutputFormatter, path, database string) (hotel.Source, func(), error) {
	noop := func() {}

	switch {
	case path != "":
		c, err := catalog.Load(path)
		if err != nil {
			return nil, noop, f.Fail(ExitCommandError, errorCode(err), "failed to load catalog", err)
		}
		f.VerboseLog("Loaded %d hotel(s) from %s", c.Len(), path)
		return c, noop, nil

	case database != "":
		st, err := store.Open(database)
		if err != nil {
			return nil, noop, f.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
		}
		f.VerboseLog("Using database %s", database)
		return st, func() { st.Close() }, nil

	default:
		return nil, noop, f.Fail(ExitCommandError, ErrCodeGeneric, "a catalog path or --db is required", nil)
	}
}

// parseFlagValue reads a flag as JSON when it parses, otherwise as a
// plain string, so --stars 4 is a number and --query boston a string.
func parseFlagValue(s string) value.Value {
	if json.Valid([]byte(s)) {
		if v, err := value.ParseJSON([]byte(s)); err == nil {
			return v
		}
	}
	return value.String(s)
}
