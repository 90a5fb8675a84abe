package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/the-gball/cloud-init-rax-pkg/internal/build"
	"github.com/the-gball/cloud-init-rax-pkg/internal/config"
	apperrors "github.com/the-gball/cloud-init-rax-pkg/internal/errors"
	"github.com/the-gball/cloud-init-rax-pkg/internal/output"
	"github.com/the-gball/cloud-init-rax-pkg/internal/rpm"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build RPM packages for the current source tree",
	Long: `Build RPM packages for the current source tree.

The build runs as a single synchronous pass: version derivation from the
upstream changelog, changelog reconciliation against repository tags,
metadata assembly, staging, source archival, spec rendering, and the
rpmbuild invocation. The staging tree is wiped and recreated at the start
of every run; concurrent builds against the same staging tree are not
supported.

Examples:
  brpm build                            # redhat, sysvinit, binary + source RPMs
  brpm build --distro suse              # target SUSE package names
  brpm build --boot systemd             # package for systemd hosts
  brpm build --sub-release 2            # release label 1.2
  brpm build -p fix-tests.patch         # apply a patch during the build
  brpm build --srpm-only                # stop after the source package
  brpm build -v                         # stream rpmbuild output`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("distro", rpm.DistroRedhat, "Target distribution (redhat or suse)")
	buildCmd.Flags().String("boot", rpm.BootSysvinit, "Boot init system the package targets (sysvinit or systemd)")
	buildCmd.Flags().BoolP("verbose", "v", false, "Stream rpmbuild output instead of capturing it")
	buildCmd.Flags().Int("sub-release", 0, "Integer sub-release appended to the release label")
	buildCmd.Flags().StringArrayP("patch", "p", nil, "Patch file to apply during the build (repeatable)")
	buildCmd.Flags().Bool("srpm-only", false, "Stop after building the source package")
	buildCmd.Flags().String("output", "", "Directory to copy finished packages into")
	buildCmd.Flags().String("config", "", "Path to config file (default .brpm/config.yml)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	distro, _ := cmd.Flags().GetString("distro")
	boot, _ := cmd.Flags().GetString("boot")
	verbose, _ := cmd.Flags().GetBool("verbose")
	subRelease, _ := cmd.Flags().GetInt("sub-release")
	patches, _ := cmd.Flags().GetStringArray("patch")
	srpmOnly, _ := cmd.Flags().GetBool("srpm-only")
	outputDir, _ := cmd.Flags().GetString("output")
	configPath, _ := cmd.Flags().GetString("config")

	if err := validateBuildFlags(distro, boot, subRelease, patches); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "loading configuration",
			"Check .brpm/config.yml syntax, or pass --config with an explicit path")
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = outputDir
	}

	pipeline := &build.Pipeline{
		Config:     cfg,
		Distro:     distro,
		Boot:       boot,
		SubRelease: subRelease,
		Patches:    patches,
		SrpmOnly:   srpmOnly,
		Verbose:    verbose,
		Out:        cmd.OutOrStdout(),
		Err:        cmd.ErrOrStderr(),
	}

	result, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	output.PrintSuccess(out, fmt.Sprintf("Built %s %s (revision %s)", cfg.Name, result.Version, result.Revision))
	for _, artifact := range result.Artifacts {
		output.PrintArtifact(out, artifact)
	}
	return nil
}

// validateBuildFlags rejects bad enum values and missing patch files before
// any work starts.
func validateBuildFlags(distro, boot string, subRelease int, patches []string) error {
	if _, err := rpm.TranslatorFor(distro); err != nil {
		return apperrors.NewArgumentError(err.Error(),
			"Pass --distro redhat or --distro suse")
	}
	if boot != rpm.BootSysvinit && boot != rpm.BootSystemd {
		return apperrors.NewArgumentError(fmt.Sprintf("unsupported boot system %q", boot),
			"Pass --boot sysvinit or --boot systemd")
	}
	if subRelease < 0 {
		return apperrors.NewArgumentError("sub-release must not be negative")
	}
	for _, patch := range patches {
		if _, err := os.Stat(patch); err != nil {
			return apperrors.NewArgumentError(fmt.Sprintf("patch file %s not found", patch),
				"Check the path passed to --patch")
		}
	}
	return nil
}
