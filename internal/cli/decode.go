package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gaq/internal/ir"
	"github.com/roach88/gaq/internal/language"
)

// CommandView is the JSON listing of one decoded command.
type CommandView struct {
	Command string `json:"command"`
	Tracker string `json:"tracker,omitempty"`
	Args    []any  `json:"args"`
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Decode _gaq segments into commands",
		Long: `Decode a JSON list of segments back into commands.

Each segment's first element is the composite token, optionally prefixed
with a tracker name and a dot. Parameters beyond the command signature are
dropped.

Example:
  gaq decode payload.json
  echo '[["rollup._trackPageview","/home"]]' | gaq decode`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(rootOpts, args, cmd)
		},
	}
}

func runDecode(opts *RootOptions, args []string, cmd *cobra.Command) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	segs, err := ir.UnmarshalSegments(data)
	if err != nil {
		return opts.fail(cmd, ExitCommandError, ErrCodeParseFailed, "failed to parse segments", err)
	}

	cmds, err := language.Builtin().Decode(segs)
	if err != nil {
		return opts.fail(cmd, ExitFailure, ErrCodeLanguageError, "failed to decode segments", err)
	}
	opts.logger().Debug("decoded segments", "count", len(cmds))

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(commandViews(cmds))
	}
	writeCommandListing(cmd, cmds)
	return nil
}

func commandViews(cmds []language.Command) []CommandView {
	views := make([]CommandView, len(cmds))
	for i, c := range cmds {
		params := c.Params()
		args := make([]any, len(params))
		for j, p := range params {
			args[j] = ir.GoValue(p)
		}
		views[i] = CommandView{
			Command: string(c.Descriptor().Identifier()),
			Tracker: c.TrackerName(),
			Args:    args,
		}
	}
	return views
}

// writeCommandListing prints one command per line:
//
//	rollup  track_event("video", "play")
func writeCommandListing(cmd *cobra.Command, cmds []language.Command) {
	w := cmd.OutOrStdout()
	for _, c := range cmds {
		params := c.Params()
		texts := make([]string, len(params))
		for i, p := range params {
			texts[i] = ir.Text(p)
		}
		tracker := c.TrackerName()
		if tracker == "" {
			tracker = "-"
		}
		fmt.Fprintf(w, "%-8s %s(%s)\n", tracker, c.Descriptor().Identifier(), strings.Join(texts, ", "))
	}
}
