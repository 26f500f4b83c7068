package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/gaq/internal/language"
)

// VocabEntry describes one registered command.
type VocabEntry struct {
	Identifier string   `json:"identifier"`
	Name       string   `json:"name"`
	Signature  []string `json:"signature"`
	SortSlot   *int     `json:"sort_slot"` // null when the fallback slot applies
}

// NewVocabCommand creates the vocab command.
func NewVocabCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List the command vocabulary",
		Long: `List every command the encoder accepts, with its wire name,
parameter signature and sort slot.

Example:
  gaq vocab
  gaq vocab --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVocab(rootOpts, language.Builtin(), cmd)
		},
	}
}

func vocabEntries(reg *language.Registry) []VocabEntry {
	descs := reg.Descriptors()
	entries := make([]VocabEntry, 0, len(descs))
	for _, d := range descs {
		sig := d.Signature()
		tags := make([]string, len(sig))
		for i, tag := range sig {
			tags[i] = string(tag)
		}
		entry := VocabEntry{
			Identifier: string(d.Identifier()),
			Name:       d.Name(),
			Signature:  tags,
		}
		if slot, ok := d.SortSlot(); ok {
			entry.SortSlot = &slot
		}
		entries = append(entries, entry)
	}
	return entries
}

func runVocab(opts *RootOptions, reg *language.Registry, cmd *cobra.Command) error {
	entries := vocabEntries(reg)
	if opts.Format == "json" {
		return opts.formatter(cmd).Success(entries)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IDENTIFIER\tNAME\tSIGNATURE\tSLOT")
	for _, e := range entries {
		slot := fmt.Sprintf("%d (fallback)", reg.FallbackSlot())
		if e.SortSlot != nil {
			slot = fmt.Sprintf("%d", *e.SortSlot)
		}
		fmt.Fprintf(tw, "%s\t%s\t(%s)\t%s\n", e.Identifier, e.Name, strings.Join(e.Signature, ", "), slot)
	}
	return tw.Flush()
}
