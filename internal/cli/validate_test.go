package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	path := writeTestFile(t, "hotels.json", sampleCatalog)

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 4 hotel(s) valid")
}

func TestValidate_ValidJSON(t *testing.T) {
	path := writeTestFile(t, "hotels.yaml", "hotels:\n  - {name: A, stars: 1, price: 0}\n")

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), path)
	require.NoError(t, err)

	var resp struct {
		Status string
		Data   ValidationResult
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 1, resp.Data.Hotels)
}

const invalidCatalog = `[
  {"name": "Good", "stars": 3, "price": 10},
  {"name": "", "stars": 3, "price": 10},
  {"name": "Too many", "stars": 7, "price": 10}
]`

func TestValidate_ReportsAllErrors(t *testing.T) {
	path := writeTestFile(t, "hotels.json", invalidCatalog)

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "2 error(s)")

	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "hotels[1].name")
	assert.Contains(t, out, "hotels[2].stars")
}

func TestValidate_ReportsAllErrorsJSON(t *testing.T) {
	path := writeTestFile(t, "hotels.json", invalidCatalog)

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), path)
	require.Error(t, err)

	var resp struct {
		Status string
		Data   ValidationResult
		Error  *CLIError
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	assert.Equal(t, 1, resp.Data.Hotels)
	require.Len(t, resp.Data.Errors, 2)
	assert.Equal(t, 1, resp.Data.Errors[0].Index)
	assert.Equal(t, 2, resp.Data.Errors[1].Index)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
}

func TestValidate_CUELineNumbers(t *testing.T) {
	path := writeTestFile(t, "hotels.cue", `hotels: [
	{name: "A", stars: 1, price: 1},
	{name: "B", stars: 0, price: 1},
]
`)

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Contains(t, out, "hotels[1].stars")
}

func TestValidate_CommandErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		code string
	}{
		{"missing file", func(t *testing.T) string { return "/nonexistent/hotels.json" }, ErrCodeNotFound},
		{"unsupported format", func(t *testing.T) string { return writeTestFile(t, "hotels.csv", "a,b\n") }, ErrCodeParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), tt.path(t))
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.code)
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}
