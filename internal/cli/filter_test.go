package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roomsJSON = `[
  {"name": "Suite Boston", "beds": 2, "tags": ["view", "balcony"]},
  {"name": "Single", "beds": 1, "tags": ["quiet"]},
  {"name": "Family", "beds": 4, "tags": ["view"]}
]`

func runFilterCmd(t *testing.T, format string, args ...string) (string, string, error) {
	t.Helper()
	return execute(NewFilterCommand(&RootOptions{Format: format}), args...)
}

func TestFilter_Expressions(t *testing.T) {
	items := writeTestFile(t, "rooms.json", roomsJSON)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "text",
			args: []string{"boston"},
			want: `[{"beds":2,"name":"Suite Boston","tags":["view","balcony"]}]`,
		},
		{
			name: "number",
			args: []string{"4"},
			want: `[{"beds":4,"name":"Family","tags":["view"]}]`,
		},
		{
			name: "negated field",
			args: []string{`{"tags": "!view"}`},
			want: `[{"beds":1,"name":"Single","tags":["quiet"]}]`,
		},
		{
			name: "array field",
			args: []string{`{"tags": "balc"}`},
			want: `[{"beds":2,"name":"Suite Boston","tags":["view","balcony"]}]`,
		},
		{
			name: "exact",
			args: []string{`{"name": "Single"}`, "--exact"},
			want: `[{"beds":1,"name":"Single","tags":["quiet"]}]`,
		},
		{
			name: "exact no substring",
			args: []string{`{"name": "Sing"}`, "--exact"},
			want: `[]`,
		},
		{
			name: "no expression",
			args: nil,
			want: `[{"beds":2,"name":"Suite Boston","tags":["view","balcony"]},{"beds":1,"name":"Single","tags":["quiet"]},{"beds":4,"name":"Family","tags":["view"]}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{items}, tt.args...)
			out, _, err := runFilterCmd(t, "text", args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestFilter_ExprFile(t *testing.T) {
	items := writeTestFile(t, "rooms.json", roomsJSON)
	expr := writeTestFile(t, "pattern.yaml", "beds: 1\n")

	out, _, err := runFilterCmd(t, "text", items, "--expr-file", expr)
	require.NoError(t, err)
	assert.Equal(t, `[{"beds":1,"name":"Single","tags":["quiet"]}]`, strings.TrimSpace(out))
}

func TestFilter_YAMLItems(t *testing.T) {
	items := writeTestFile(t, "items.yaml", "- apple\n- Banana\n- cherry\n")

	out, _, err := runFilterCmd(t, "text", items, "AN")
	require.NoError(t, err)
	assert.Equal(t, `["Banana"]`, strings.TrimSpace(out))
}

func TestFilter_ExpressionAndFileConflict(t *testing.T) {
	items := writeTestFile(t, "rooms.json", roomsJSON)
	expr := writeTestFile(t, "pattern.yaml", "beds: 1\n")

	_, _, err := runFilterCmd(t, "text", items, "x", "--expr-file", expr)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestFilter_NonArrayInput(t *testing.T) {
	items := writeTestFile(t, "object.json", `{"name": "not a list"}`)

	out, stderr, err := runFilterCmd(t, "text", items, "name")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
	assert.Contains(t, stderr, "filter expected an array")
	assert.Contains(t, stderr, "kind=object")
}

func TestFilter_NullInputPassesThrough(t *testing.T) {
	items := writeTestFile(t, "null.json", "null")

	out, stderr, err := runFilterCmd(t, "text", items, "x")
	require.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(out))
	assert.Empty(t, stderr)
}

func TestFilter_JSONFormat(t *testing.T) {
	items := writeTestFile(t, "rooms.json", roomsJSON)

	out, _, err := runFilterCmd(t, "json", items, "quiet")
	require.NoError(t, err)

	var resp struct {
		Status string
		Data   []map[string]any
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Single", resp.Data[0]["name"])
}

func TestFilter_ReadErrors(t *testing.T) {
	_, _, err := runFilterCmd(t, "text", "/nonexistent/items.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)

	bad := writeTestFile(t, "bad.json", "[{")
	_, _, err = runFilterCmd(t, "text", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeParse)
}
