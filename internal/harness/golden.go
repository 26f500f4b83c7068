package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/gaq/internal/ir"
)

// PayloadSnapshot captures every payload and carried flash of a scenario.
type PayloadSnapshot struct {
	ScenarioName string
	Environment  string
	Requests     []RequestResult
}

// toCanonicalMap converts a snapshot to the shape ir.MarshalCanonical accepts.
func (s *PayloadSnapshot) toCanonicalMap() map[string]any {
	requests := make([]any, len(s.Requests))
	for i, rr := range s.Requests {
		requests[i] = map[string]any{
			"payload": rr.Payload,
			"flash": map[string]any{
				"early":  rr.Flash.Early,
				"normal": rr.Flash.Normal,
			},
		}
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"environment":   s.Environment,
		"requests":      requests,
	}
}

// MarshalSnapshot renders a scenario result as canonical JSON.
func MarshalSnapshot(scenario *Scenario, result *Result) ([]byte, error) {
	env := scenario.Environment
	if env == "" {
		env = DefaultEnvironment
	}
	snapshot := PayloadSnapshot{
		ScenarioName: scenario.Name,
		Environment:  env,
		Requests:     result.Requests,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares all payloads against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) error {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario, result)
}

// AssertGolden compares an existing result against the scenario's golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
