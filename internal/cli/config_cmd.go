package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/the-gball/cloud-init-rax-pkg/internal/config"
	apperrors "github.com/the-gball/cloud-init-rax-pkg/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration as YAML, after applying defaults,
the project config file, and BRPM_* environment variables.

Examples:
  brpm config                      # Effective config from .brpm/config.yml
  brpm config --config other.yml   # Effective config from an explicit file
  brpm config --template           # Print a commented starter config`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().String("config", "", "Path to config file (default .brpm/config.yml)")
	configCmd.Flags().Bool("template", false, "Print a commented starter config instead")
}

func runConfig(cmd *cobra.Command, args []string) error {
	template, _ := cmd.Flags().GetBool("template")
	if template {
		fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigTemplate())
		return nil
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "loading configuration")
	}

	rendered, err := cfg.ToYAML()
	if err != nil {
		return apperrors.Wrap(err, apperrors.Configuration)
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
