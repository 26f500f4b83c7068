// Command gaq builds, sorts and carries _gaq analytics commands.
//
// Usage:
//
//	gaq vocab                                  List the command vocabulary
//	gaq encode [file|-]                        Encode commands into segments
//	gaq decode [file|-]                        Decode segments into commands
//	gaq finalize --session id [--config file]  Finalize one request
//	gaq flash push|show|list|clear             Manage next-request commands
//	gaq test <configs-dir> <scenarios-dir>     Run payload scenarios
package main

import (
	"fmt"
	"os"

	"github.com/roach88/gaq/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
