package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gaq/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool
	Filter string
}

// ScenarioResult is the outcome of one scenario file.
type ScenarioResult struct {
	Name          string   `json:"name"`
	Pass          bool     `json:"pass"`
	GoldenUpdated bool     `json:"golden_updated,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

// TestResult summarizes a test run.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

func (r *TestResult) add(s ScenarioResult) {
	r.Scenarios = append(r.Scenarios, s)
	r.Total++
	if s.Pass {
		r.Passed++
	} else {
		r.Failed++
	}
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <configs-dir> <scenarios-dir>",
		Short: "Run payload scenarios",
		Long: `Run payload scenarios against their configs.

Each scenario replays a sequence of requests over one in-memory flash. A
scenario passes when every request's payload matches its expect list, every
assertion holds, and the snapshot matches scenarios-dir/golden/<file>.golden
when that file exists. Config paths in scenarios resolve against configs-dir.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Missing directory or bad filter

Examples:
  gaq test ./configs ./scenarios
  gaq test ./configs ./scenarios --filter "carry-*"
  gaq test ./configs ./scenarios --update
  gaq test ./configs ./scenarios --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "rewrite golden snapshots from the current run")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only run scenarios whose file name matches this glob")

	return cmd
}

func runTests(cmd *cobra.Command, opts *TestOptions, configsDir, scenariosDir string) error {
	for _, dir := range []struct{ kind, path string }{{"configs", configsDir}, {"scenarios", scenariosDir}} {
		if _, err := os.Stat(dir.path); errors.Is(err, fs.ErrNotExist) {
			return NewExitError(ExitCommandError, fmt.Sprintf("%s directory not found: %s", dir.kind, dir.path))
		}
	}

	files, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	result := TestResult{Scenarios: []ScenarioResult{}}
	if len(files) == 0 && opts.Format != "json" {
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	for _, file := range files {
		sr := checkScenario(opts, file, configsDir)
		if opts.Format != "json" {
			printScenario(cmd.OutOrStdout(), sr)
		}
		result.add(sr)
	}

	if opts.Format == "json" {
		return writeTestJSON(cmd.OutOrStdout(), result)
	}
	return writeTestSummary(cmd.OutOrStdout(), result)
}

// findScenarioFiles walks dir for .yaml and .yml files. A non-empty filter is
// matched against the file name without its extension.
func findScenarioFiles(dir, filter string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			matched, err := filepath.Match(filter, strings.TrimSuffix(d.Name(), ext))
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

// checkScenario loads, runs and golden-checks one scenario file.
func checkScenario(opts *TestOptions, file, configsDir string) ScenarioResult {
	scenario, err := harness.LoadScenarioWithBasePath(file, configsDir)
	if err != nil {
		return failed(filepath.Base(file), fmt.Sprintf("load: %v", err))
	}

	result, err := harness.Run(scenario, harness.WithLogger(opts.logger()))
	if err != nil {
		return failed(scenario.Name, fmt.Sprintf("run: %v", err))
	}

	snapshot, err := harness.MarshalSnapshot(scenario, result)
	if err != nil {
		return failed(scenario.Name, fmt.Sprintf("snapshot: %v", err))
	}

	golden := goldenFilePath(file)
	if opts.Update {
		if err := writeGolden(golden, snapshot); err != nil {
			return failed(scenario.Name, fmt.Sprintf("golden: %v", err))
		}
		return ScenarioResult{Name: scenario.Name, Pass: true, GoldenUpdated: true}
	}

	errs := result.Errors
	want, err := os.ReadFile(golden)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		errs = append(errs, fmt.Sprintf("golden: %v", err))
	case !bytes.Equal(want, snapshot):
		errs = append(errs, "golden mismatch (rerun with --update to accept)")
	}

	if !result.Pass || len(errs) > 0 {
		return failed(scenario.Name, errs...)
	}
	return ScenarioResult{Name: scenario.Name, Pass: true}
}

func failed(name string, errs ...string) ScenarioResult {
	return ScenarioResult{Name: name, Errors: errs}
}

// goldenFilePath maps scenarios/x.yaml to scenarios/golden/x.golden.
func goldenFilePath(file string) string {
	base := filepath.Base(file)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(file), "golden", name+".golden")
}

func writeGolden(path string, snapshot []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, snapshot, 0644)
}

func printScenario(w io.Writer, r ScenarioResult) {
	switch {
	case r.GoldenUpdated:
		fmt.Fprintf(w, "✓ %s (golden updated)\n", r.Name)
	case r.Pass:
		fmt.Fprintf(w, "✓ %s\n", r.Name)
	default:
		fmt.Fprintf(w, "✗ %s\n", r.Name)
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
}

func writeTestJSON(w io.Writer, result TestResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeTestFailed,
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(response); err != nil {
		return err
	}
	return scenarioFailures(result)
}

func writeTestSummary(w io.Writer, result TestResult) error {
	fmt.Fprintf(w, "\n%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	return scenarioFailures(result)
}

func scenarioFailures(result TestResult) error {
	if result.Failed == 0 {
		return nil
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
}
