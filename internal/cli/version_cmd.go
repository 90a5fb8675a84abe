package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/the-gball/cloud-init-rax-pkg/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the brpm version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "brpm %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
