package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hotels/internal/value"
)

const sampleCatalog = `[
  {"id": "1", "name": "Hotel Emperador", "stars": 3, "price": 1596, "amenities": ["safety-box", "nightclub"]},
  {"id": "2", "name": "Petit Palace San Bernardo", "stars": 4, "price": 2145, "amenities": ["beach"]},
  {"id": "3", "name": "Hotel Nuevo Boston", "stars": 2, "price": 861},
  {"id": "4", "name": "Hotel Santo Domingo", "stars": 4, "price": 1596}
]`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func kindName(v value.Value) string {
	return value.KindOf(v).String()
}
