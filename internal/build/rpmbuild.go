package build

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

// Runner invokes the package builder against a staging tree. With Verbose
// set, tool output streams through to the configured writers; otherwise it
// is captured and replayed only when the build fails.
//
// The run blocks until the tool exits. There is no retry and no timeout;
// a correctly configured environment is assumed.
type Runner struct {
	// Command is the package builder invocation. It may include leading
	// arguments (split on whitespace). Defaults to "rpmbuild".
	Command string
	Verbose bool
	Out     io.Writer
	Err     io.Writer
}

// Build runs rpmbuild for the rendered spec with _topdir pointed at the
// staging root. srpmOnly stops after the source package (-bs); otherwise
// both binary and source packages are built (-ba).
func (r *Runner) Build(ctx context.Context, topdir, specPath string, srpmOnly bool) error {
	mode := "-ba"
	if srpmOnly {
		mode = "-bs"
	}
	args := []string{mode, "--define", fmt.Sprintf("_topdir %s", topdir), specPath}
	cmd := r.buildCommand(ctx, args)

	if r.Verbose {
		cmd.Stdout = r.out()
		cmd.Stderr = r.errOut()
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", r.describe(args), err)
		}
		return nil
	}

	var captured bytes.Buffer
	cmd.Stdout = &captured
	cmd.Stderr = &captured

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(r.errOut()))
	spin.Suffix = " running " + r.commandName()
	spin.Start()
	err := cmd.Run()
	spin.Stop()

	if err != nil {
		fmt.Fprint(r.errOut(), captured.String())
		return fmt.Errorf("%s: %w", r.describe(args), err)
	}
	return nil
}

// buildCommand assembles the exec.Cmd, splitting any extra arguments
// embedded in Command.
func (r *Runner) buildCommand(ctx context.Context, args []string) *exec.Cmd {
	parts := strings.Fields(r.command())
	full := append(append([]string{}, parts[1:]...), args...)
	return exec.CommandContext(ctx, parts[0], full...)
}

func (r *Runner) command() string {
	if r.Command != "" {
		return r.Command
	}
	return "rpmbuild"
}

func (r *Runner) commandName() string {
	return strings.Fields(r.command())[0]
}

func (r *Runner) describe(args []string) string {
	return r.commandName() + " " + strings.Join(args, " ")
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

func (r *Runner) errOut() io.Writer {
	if r.Err != nil {
		return r.Err
	}
	return os.Stderr
}

// Artifacts returns the package files rpmbuild left under the staging tree,
// sorted by path.
func Artifacts(topdir string) ([]string, error) {
	var found []string
	for _, pattern := range []string{
		filepath.Join(topdir, "RPMS", "*", "*.rpm"),
		filepath.Join(topdir, "RPMS", "*.rpm"),
		filepath.Join(topdir, "SRPMS", "*.rpm"),
	} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", pattern, err)
		}
		found = append(found, matches...)
	}
	sort.Strings(found)
	return found, nil
}

// CopyArtifacts copies finished packages into destDir, creating it if
// needed, and returns the destination paths.
func CopyArtifacts(paths []string, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	copied := make([]string, 0, len(paths))
	for _, path := range paths {
		dest := filepath.Join(destDir, filepath.Base(path))
		if err := copyFile(path, dest); err != nil {
			return nil, fmt.Errorf("copying %s: %w", path, err)
		}
		copied = append(copied, dest)
	}
	return copied, nil
}
