package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const finalizeConfigCUE = `web_property_id: "UA-1000-1"
anonymize_ip:    "production"
`

func writeFinalizeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gaq.cue")
	require.NoError(t, os.WriteFile(path, []byte(finalizeConfigCUE), 0644))
	return path
}

func TestFinalizeCommand_ConsumesFlash(t *testing.T) {
	t.Setenv("GAQ_WEB_PROPERTY_ID", "")
	dbPath := filepath.Join(t.TempDir(), "gaq.db")
	cfgPath := writeFinalizeConfig(t)

	_, err := executeRoot(t, "", "flash", "push", "track_event", "signup", "complete", "--db", dbPath, "--session", "s1")
	require.NoError(t, err)

	args := []string{"finalize", "--config", cfgPath, "--db", dbPath, "--session", "s1", "--env", "production"}

	output, err := executeRoot(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t,
		`[["_setAccount","UA-1000-1"],["_gat._anonymizeIp"],["_trackPageview"],["_trackEvent","signup","complete"]]`+"\n",
		output)

	output, err = executeRoot(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t,
		`[["_setAccount","UA-1000-1"],["_gat._anonymizeIp"],["_trackPageview"]]`+"\n",
		output)
}

func TestFinalizeCommand_EnvironmentOverrides(t *testing.T) {
	t.Setenv("GAQ_WEB_PROPERTY_ID", "UA-9999-1")
	t.Setenv("GAQ_ENV", "staging")
	dbPath := filepath.Join(t.TempDir(), "gaq.db")
	t.Setenv("GAQ_DB", dbPath)

	output, err := executeRoot(t, "", "finalize", "--config", writeFinalizeConfig(t), "--session", "s1", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Session     string  `json:"session"`
			Environment string  `json:"environment"`
			Payload     [][]any `json:"payload"`
			RenderGAJS  bool    `json:"render_ga_js"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "s1", resp.Data.Session)
	assert.Equal(t, "staging", resp.Data.Environment)
	assert.Equal(t, [][]any{{"_setAccount", "UA-9999-1"}, {"_trackPageview"}}, resp.Data.Payload)
	assert.False(t, resp.Data.RenderGAJS)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database is created at $GAQ_DB")
}

func TestFinalizeCommand_DefaultConfigRender(t *testing.T) {
	t.Setenv("GAQ_WEB_PROPERTY_ID", "")
	dbPath := filepath.Join(t.TempDir(), "gaq.db")

	output, err := executeRoot(t, "", "finalize", "--db", dbPath, "--session", "s1", "--env", "production", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data FinalizeResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.True(t, resp.Data.RenderGAJS)
	assert.Len(t, resp.Data.Payload, 2)
}

func TestFinalizeCommand_Errors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "gaq.db")
	badConfig := filepath.Join(t.TempDir(), "bad.cue")
	require.NoError(t, os.WriteFile(badConfig, []byte(`variables: [{name: "plan", slot: 9}]`), 0644))

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"missing session", []string{"--db", dbPath}, ExitFailure, `required flag(s) "session" not set`},
		{"missing config", []string{"--db", dbPath, "--session", "s1", "--config", "/nonexistent/gaq.cue"}, ExitCommandError, "failed to load config"},
		{"invalid config", []string{"--db", dbPath, "--session", "s1", "--config", badConfig}, ExitCommandError, "failed to load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeRoot(t, "", append([]string{"finalize"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
