package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Scenarios(t *testing.T) {
	for _, name := range []string{"carry_over", "sort_order"} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenarioWithBasePath("testdata/scenarios/"+name+".yaml", "testdata/scenarios")
			require.NoError(t, err)

			// Regenerate with: go test ./internal/harness -run TestRunWithGolden -update
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestMarshalSnapshot_Deterministic(t *testing.T) {
	scenario, err := LoadScenarioWithBasePath("testdata/scenarios/sort_order.yaml", "testdata/scenarios")
	require.NoError(t, err)

	var outputs []string
	for i := 0; i < 3; i++ {
		result, err := Run(scenario)
		require.NoError(t, err)
		data, err := MarshalSnapshot(scenario, result)
		require.NoError(t, err)
		outputs = append(outputs, string(data))
	}

	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[1], outputs[2])
	assert.Contains(t, outputs[0], `"environment":"development"`)
	assert.Contains(t, outputs[0], `"scenario_name":"sort_order"`)
}

func TestMarshalSnapshot_EmptyResult(t *testing.T) {
	scenario := &Scenario{Name: "empty", Environment: "staging"}

	data, err := MarshalSnapshot(scenario, NewResult())
	require.NoError(t, err)
	assert.Equal(t, `{"environment":"staging","requests":[],"scenario_name":"empty"}`, string(data))
}
