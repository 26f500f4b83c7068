package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gaq/internal/ir"
	"github.com/roach88/gaq/internal/language"
)

// EncodeOptions holds flags for the encode command.
type EncodeOptions struct {
	*RootOptions
	Sort bool
}

// CommandInput is one command in the encode input.
type CommandInput struct {
	Command string `json:"command"`
	Tracker string `json:"tracker,omitempty"`
	Args    []any  `json:"args,omitempty"`
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EncodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "encode [file|-]",
		Short: "Encode commands into _gaq segments",
		Long: `Encode a JSON list of commands into the segment lists pushed to _gaq.

Each input element names a vocabulary identifier, an optional tracker and
the raw positional arguments:

  [{"command": "track_event", "tracker": "rollup", "args": ["video", "play"]}]

Arguments are coerced against the command signature. Commands are sorted by
slot before encoding unless --sort=false is given.

Example:
  gaq encode commands.json
  echo '[{"command":"track_pageview"}]' | gaq encode`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Sort, "sort", true, "sort commands by slot before encoding")

	return cmd
}

func runEncode(opts *EncodeOptions, args []string, cmd *cobra.Command) error {
	logger := opts.logger()

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	inputs, err := parseCommandInputs(data)
	if err != nil {
		return opts.fail(cmd, ExitCommandError, ErrCodeParseFailed, "failed to parse commands", err)
	}

	reg := language.Builtin()
	cmds := make([]language.Command, 0, len(inputs))
	for i, in := range inputs {
		c, err := reg.NewCommand(language.Identifier(in.Command), in.Args...)
		if err != nil {
			return opts.fail(cmd, ExitFailure, ErrCodeLanguageError, fmt.Sprintf("command %d rejected", i), err)
		}
		if in.Tracker != "" {
			c = c.WithTracker(in.Tracker)
		}
		cmds = append(cmds, c)
	}

	if opts.Sort {
		reg.Sort(cmds)
	}
	segs := reg.Encode(cmds)
	logger.Debug("encoded commands", "count", len(segs), "sorted", opts.Sort)

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(segs)
	}

	payload, err := ir.MarshalPayload(segs)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to marshal payload", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	return nil
}

// parseCommandInputs decodes the encode input, keeping numbers exact so
// integer arguments coerce without passing through float64.
func parseCommandInputs(data []byte) ([]CommandInput, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var inputs []CommandInput
	if err := dec.Decode(&inputs); err != nil {
		return nil, err
	}
	for i, in := range inputs {
		if in.Command == "" {
			return nil, fmt.Errorf("commands[%d]: command is required", i)
		}
	}
	return inputs, nil
}
