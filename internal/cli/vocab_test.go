package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabCommandText(t *testing.T) {
	output, err := executeRoot(t, "", "vocab")
	require.NoError(t, err)

	assert.Contains(t, output, "IDENTIFIER")
	assert.Regexp(t, `set_account\s+_setAccount\s+\(String\)\s+0`, output)
	assert.Regexp(t, `anonymize_ip\s+_gat\._anonymizeIp\s+\(\)\s+1`, output)
	assert.Regexp(t, `track_event\s+_trackEvent\s+\(String, String, String, Int, Boolean\)\s+4 \(fallback\)`, output)
}

func TestVocabCommandJSON(t *testing.T) {
	output, err := executeRoot(t, "", "vocab", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   []VocabEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 5)

	assert.Equal(t, "set_custom_var", resp.Data[3].Identifier)
	assert.Equal(t, []string{"Int", "String", "String", "Int"}, resp.Data[3].Signature)
	require.NotNil(t, resp.Data[3].SortSlot)
	assert.Equal(t, 3, *resp.Data[3].SortSlot)
	assert.Nil(t, resp.Data[4].SortSlot)
}
