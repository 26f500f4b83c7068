package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenarioWithBasePath("testdata/scenarios/carry_over.yaml", "testdata/scenarios")
	require.NoError(t, err)

	assert.Equal(t, "carry_over", scenario.Name)
	assert.Equal(t, "production", scenario.Environment)
	assert.Equal(t, filepath.Join("testdata", "configs", "basic.cue"), scenario.Config)
	require.Len(t, scenario.Requests, 3)

	first := scenario.Requests[0]
	require.Len(t, first.NextRequest, 2)
	assert.Equal(t, "plan", first.NextRequest[0].Variable)
	assert.Equal(t, "gold", first.NextRequest[0].Value)
	assert.Equal(t, "track_event", first.NextRequest[1].Command)
	assert.Equal(t, []any{"signup", "complete"}, first.NextRequest[1].Args)
	assert.Len(t, first.Expect, 5)

	second := scenario.Requests[1]
	assert.Equal(t, "rollup", second.Immediate[0].Tracker)
	assert.Equal(t, []any{"_setCustomVar", 1, "plan", "gold", 1}, second.Expect[5])
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "Misspelled request key"
requests:
  - next_requests:
      - command: track_pageview
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: "x"
requests:
  - immediate: [{command: track_pageview}]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: x
requests:
  - immediate: [{command: track_pageview}]
`,
			wantErr: "description is required",
		},
		{
			name: "no requests",
			content: `
name: x
description: "x"
`,
			wantErr: "requests list is required",
		},
		{
			name: "missing config",
			content: `
name: x
description: "x"
config: /nonexistent/gaq.cue
requests:
  - immediate: [{command: track_pageview}]
`,
			wantErr: "config file not found",
		},
		{
			name: "empty step",
			content: `
name: x
description: "x"
requests:
  - immediate: [{tracker: rollup}]
`,
			wantErr: "requests[0].immediate[0]: command or variable is required",
		},
		{
			name: "command and variable",
			content: `
name: x
description: "x"
requests:
  - next_request: [{command: track_pageview, variable: plan}]
`,
			wantErr: "requests[0].next_request[0]: command and variable are mutually exclusive",
		},
		{
			name: "variable with args",
			content: `
name: x
description: "x"
requests:
  - immediate: [{variable: plan, args: [1]}]
`,
			wantErr: "args are not allowed on a variable step",
		},
		{
			name: "assertion without type",
			content: `
name: x
description: "x"
requests:
  - assertions: [{token: _trackPageview}]
`,
			wantErr: "type is required",
		},
		{
			name: "payload_contains without token",
			content: `
name: x
description: "x"
requests:
  - assertions: [{type: payload_contains}]
`,
			wantErr: "token is required for payload_contains",
		},
		{
			name: "payload_order without tokens",
			content: `
name: x
description: "x"
requests:
  - assertions: [{type: payload_order}]
`,
			wantErr: "tokens list is required",
		},
		{
			name: "negative count",
			content: `
name: x
description: "x"
requests:
  - assertions: [{type: payload_count, token: _trackEvent, count: -1}]
`,
			wantErr: "count must be non-negative",
		},
		{
			name: "unknown assertion",
			content: `
name: x
description: "x"
requests:
  - assertions: [{type: trace_contains}]
`,
			wantErr: `unknown assertion type "trace_contains"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
