package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const encodeInput = `[
  {"command": "track_event", "args": ["video", "play", "intro", 3]},
  {"command": "set_account", "args": ["UA-1"]},
  {"command": "track_pageview", "tracker": "rollup"}
]`

func TestEncodeCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "sorted",
			args: []string{"encode"},
			want: `[["_setAccount","UA-1"],["rollup._trackPageview"],["_trackEvent","video","play","intro",3]]`,
		},
		{
			name: "unsorted",
			args: []string{"encode", "--sort=false"},
			want: `[["_trackEvent","video","play","intro",3],["_setAccount","UA-1"],["rollup._trackPageview"]]`,
		},
		{
			name: "explicit stdin",
			args: []string{"encode", "-"},
			want: `[["_setAccount","UA-1"],["rollup._trackPageview"],["_trackEvent","video","play","intro",3]]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeRoot(t, encodeInput, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", output)
		})
	}
}

func TestEncodeCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"command":"track_pageview","args":["/a?b=1&c=2"]}]`), 0644))

	output, err := executeRoot(t, "", "encode", path)
	require.NoError(t, err)
	// Payload output escapes HTML characters
	assert.Equal(t, `[["_trackPageview","/a?b=1\u0026c=2"]]`+"\n", output)
}

func TestEncodeCommandCoercion(t *testing.T) {
	output, err := executeRoot(t, `[{"command":"set_custom_var","args":["2"," section ",7,"3"]}]`, "encode")
	require.NoError(t, err)
	assert.Equal(t, `[["_setCustomVar",2," section ","7",3]]`+"\n", output)
}

func TestEncodeCommandJSON(t *testing.T) {
	output, err := executeRoot(t, encodeInput, "encode", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string  `json:"status"`
		Data   [][]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, []any{"_setAccount", "UA-1"}, resp.Data[0])
}

func TestEncodeCommandErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"unknown command", `[{"command":"track_social"}]`, nil, ExitFailure, "UNKNOWN_COMMAND"},
		{"invalid argument", `[{"command":"set_custom_var","args":["one"]}]`, nil, ExitFailure, "INVALID_ARGUMENT"},
		{"not json", `track_event`, nil, ExitCommandError, "failed to parse commands"},
		{"unknown field", `[{"command":"track_pageview","params":[]}]`, nil, ExitCommandError, "unknown field"},
		{"missing command", `[{"args":[1]}]`, nil, ExitCommandError, "command is required"},
		{"missing file", "", []string{"/nonexistent/commands.json"}, ExitCommandError, "input file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeRoot(t, tt.input, append([]string{"encode"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEncodeCommandErrorJSON(t *testing.T) {
	output, err := executeRoot(t, `[{"command":"track_social"}]`, "encode", "--format", "json")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeLanguageError, resp.Error.Code)
	assert.Equal(t, "command 0 rejected", resp.Error.Message)
}
