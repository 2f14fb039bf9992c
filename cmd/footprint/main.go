// Command footprint estimates the carbon footprint of an activity document.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/cli"
	"github.com/rshade/footprint/pkg/version"
)

func main() {
	if err := run(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(extractExitCode(err))
	}
}

func run() error {
	return newRootCmd().Execute()
}

// newRootCmd builds the CLI with a --version line carrying build metadata.
func newRootCmd() *cobra.Command {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetVersionTemplate(fmt.Sprintf("footprint {{.Version}} (commit %s, built %s)\n",
		version.GetGitCommit(), version.GetBuildDate()))
	return root
}

// extractExitCode maps err to a process exit code: 0 for nil, the requested
// code for *cli.ExitError, 1 for anything else.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
