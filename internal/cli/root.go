// Package cli implements the brpm command surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/the-gball/cloud-init-rax-pkg/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "brpm",
	Short: "Build RPM packages from a git source tree",
	Long: `brpm builds distribution packages for a source tree held in git.

It derives the package version from the upstream changelog, reconciles
changelog version headers against repository tags into RPM changelog
entries, renders a spec file from a template, archives the source tree,
and runs rpmbuild against a freshly created staging tree.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, rendering structured errors to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if cliErr := apperrors.AsCLIError(err); cliErr != nil {
			apperrors.PrintError(cliErr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return err
}

// ExitCode maps an Execute error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	cliErr := apperrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}
	switch cliErr.Category {
	case apperrors.Argument:
		return ExitInvalidArguments
	case apperrors.Configuration:
		return ExitConfigError
	case apperrors.Parse:
		return ExitParseError
	case apperrors.External:
		return ExitExternalTool
	default:
		return ExitFailure
	}
}
