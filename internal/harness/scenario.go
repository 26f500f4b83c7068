package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance scenario: a sequence of requests sharing one
// flash, each pushing commands and checking the finalized payload.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is the path to a CUE configuration file.
	// Relative paths are resolved against the base path given to the loader.
	// Empty means the default configuration.
	Config string `yaml:"config,omitempty"`

	// Environment is matched against configuration gates.
	// Defaults to "development".
	Environment string `yaml:"environment,omitempty"`

	// Requests run in order over one shared flash.
	Requests []Request `yaml:"requests"`
}

// Request is one simulated request.
type Request struct {
	// Immediate steps are pushed on the current request.
	Immediate []Step `yaml:"immediate,omitempty"`

	// NextRequest steps are carried to the following request.
	NextRequest []Step `yaml:"next_request,omitempty"`

	// Expect is the exact finalized payload, one list per segment.
	// Nil skips the exact comparison.
	Expect [][]any `yaml:"expect,omitempty"`

	// Assertions are looser checks on the finalized payload.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step pushes one command, or sets one declared custom variable.
// Exactly one of Command and Variable is set.
type Step struct {
	// Command is a vocabulary identifier such as "track_event".
	Command string `yaml:"command,omitempty"`

	// Args are the raw positional arguments, coerced by the command signature.
	Args []any `yaml:"args,omitempty"`

	// Variable is the name of a declared custom variable.
	Variable string `yaml:"variable,omitempty"`

	// Value is the custom variable value.
	Value any `yaml:"value,omitempty"`

	// Tracker targets a named tracker. Empty is the default tracker.
	Tracker string `yaml:"tracker,omitempty"`
}

// Assertion checks the finalized payload of a request.
type Assertion struct {
	// Type specifies the assertion type:
	// - "payload_contains": a segment with Token exists, optionally starting with Args
	// - "payload_order": Tokens appear in this order
	// - "payload_count": Token appears exactly Count times
	// - "flash_empty": nothing was carried to the next request
	Type string `yaml:"type"`

	// Token is the composite segment token (used by payload_contains, payload_count).
	Token string `yaml:"token,omitempty"`

	// Args are the expected leading parameters (used by payload_contains).
	Args []any `yaml:"args,omitempty"`

	// Tokens is the expected order (used by payload_order).
	Tokens []string `yaml:"tokens,omitempty"`

	// Count is the expected number of occurrences (used by payload_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertPayloadContains = "payload_contains"
	AssertPayloadOrder    = "payload_order"
	AssertPayloadCount    = "payload_count"
	AssertFlashEmpty      = "flash_empty"
)

// DefaultEnvironment is used when a scenario names none.
const DefaultEnvironment = "development"

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, "")
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the config path relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "next_requests:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Config != "" && !filepath.IsAbs(scenario.Config) && basePath != "" {
		scenario.Config = filepath.Join(basePath, scenario.Config)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Requests) == 0 {
		return fmt.Errorf("requests list is required and must be non-empty")
	}

	if s.Config != "" {
		if _, err := os.Stat(s.Config); os.IsNotExist(err) {
			return fmt.Errorf("config file not found: %s", s.Config)
		}
	}

	for i, req := range s.Requests {
		for j, step := range req.Immediate {
			if err := validateStep(step); err != nil {
				return fmt.Errorf("requests[%d].immediate[%d]: %w", i, j, err)
			}
		}
		for j, step := range req.NextRequest {
			if err := validateStep(step); err != nil {
				return fmt.Errorf("requests[%d].next_request[%d]: %w", i, j, err)
			}
		}
		for j, a := range req.Assertions {
			if err := validateAssertion(a); err != nil {
				return fmt.Errorf("requests[%d].assertions[%d]: %w", i, j, err)
			}
		}
	}

	return nil
}

func validateStep(step Step) error {
	switch {
	case step.Command == "" && step.Variable == "":
		return fmt.Errorf("command or variable is required")
	case step.Command != "" && step.Variable != "":
		return fmt.Errorf("command and variable are mutually exclusive")
	case step.Variable != "" && len(step.Args) > 0:
		return fmt.Errorf("args are not allowed on a variable step")
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("type is required")
	case AssertPayloadContains:
		if a.Token == "" {
			return fmt.Errorf("token is required for payload_contains")
		}
	case AssertPayloadOrder:
		if len(a.Tokens) == 0 {
			return fmt.Errorf("tokens list is required for payload_order")
		}
	case AssertPayloadCount:
		if a.Token == "" {
			return fmt.Errorf("token is required for payload_count")
		}
		if a.Count < 0 {
			return fmt.Errorf("count must be non-negative for payload_count")
		}
	case AssertFlashEmpty:
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
