package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"list", "filter", "import", "validate", "replay"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	path := writeTestFile(t, "hotels.json", sampleCatalog)

	_, _, err := execute(NewRootCommand(), "--format", "xml", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestRootCommand_RunsSubcommand(t *testing.T) {
	path := writeTestFile(t, "hotels.json", sampleCatalog)

	out, _, err := execute(NewRootCommand(), "list", path, "--stars", "2", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"Hotel Nuevo Boston"`)
}

func TestRootCommand_VerboseLogsToStderr(t *testing.T) {
	path := writeTestFile(t, "hotels.json", sampleCatalog)

	_, stderr, err := execute(NewRootCommand(), "-v", "list", path, "--query", "boston")
	require.NoError(t, err)
	assert.Contains(t, stderr, "hotels filtered")
	assert.Contains(t, stderr, "level=DEBUG")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))

	wrapped := WrapExitError(ExitFailure, "outer", errors.New("inner"))
	assert.Equal(t, "outer: inner", wrapped.Error())
	assert.Equal(t, "inner", errors.Unwrap(wrapped).Error())
}
