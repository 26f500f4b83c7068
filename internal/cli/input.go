package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// readInput reads the file named by the first argument, or stdin when the
// argument is missing or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read stdin", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if os.IsNotExist(err) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("input file not found: %s", args[0]))
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read input", err)
	}
	return data, nil
}

// commandContext returns the command's context, or a background context when
// the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
