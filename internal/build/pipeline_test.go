package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-gball/cloud-init-rax-pkg/internal/config"
	apperrors "github.com/the-gball/cloud-init-rax-pkg/internal/errors"
	"github.com/the-gball/cloud-init-rax-pkg/internal/testutil"
)

const pipelineChangelog = `0.7.2:
 - pending work

0.6.0:
 - released fix
`

// initTestRepo creates a git repository with a tagged release commit and
// returns its path and head revision.
func initTestRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.py"), []byte("setup"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ChangeLog"), []byte(pipelineChangelog), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("setup.py")
	require.NoError(t, err)
	_, err = wt.Add("ChangeLog")
	require.NoError(t, err)

	sig := &object.Signature{
		Name:  "Jane Dev",
		Email: "jane@example.com",
		When:  time.Date(2023, 5, 2, 10, 0, 0, 0, time.UTC),
	}
	hash, err := wt.Commit("release 0.6.0", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)

	_, err = repo.CreateTag("0.6.0", hash, nil)
	require.NoError(t, err)

	return dir, hash.String()
}

func pipelineConfig(repoDir string) *config.Config {
	return &config.Config{
		Name:         "cloud-init",
		RepoPath:     repoDir,
		Changelog:    "ChangeLog",
		StagingDir:   ".brpm/rpmbuild",
		Release:      "1",
		Dependencies: []string{"pyyaml", "argparse"},
		RPMBuildCmd:  testutil.HelperCommand(),
	}
}

func TestPipelineRun(t *testing.T) {
	repoDir, head := initTestRepo(t)
	argsFile := filepath.Join(t.TempDir(), "args.json")
	testutil.SetHelperEnv(t, testutil.HelperProcessConfig{ArgsFile: argsFile})

	var out, errBuf bytes.Buffer
	p := &Pipeline{
		Config:  pipelineConfig(repoDir),
		Distro:  "redhat",
		Verbose: true,
		Out:     &out,
		Err:     &errBuf,
	}

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0.7.2", result.Version, "version comes from the newest changelog header")
	assert.Equal(t, head, result.Revision, "untagged head version resolves to the branch head")

	rendered, err := os.ReadFile(result.SpecPath)
	require.NoError(t, err)
	spec := string(rendered)
	assert.Contains(t, spec, "Name:           cloud-init")
	assert.Contains(t, spec, "Version:        0.7.2")
	assert.Contains(t, spec, "Source0:        cloud-init-0.7.2.tar.gz")
	assert.Contains(t, spec, "Requires:       PyYAML")
	assert.Contains(t, spec, " - ??\n", "untagged head version gets a synthetic entry")
	assert.Contains(t, spec, "* Tue May 02 2023 - Jane Dev <jane@example.com> - 0.6.0")
	assert.Contains(t, spec, " - pending work")
	assert.Contains(t, spec, " - released fix")

	staging := filepath.Dir(filepath.Dir(result.SpecPath))
	_, err = os.Stat(filepath.Join(staging, "SOURCES", "cloud-init-0.7.2.tar.gz"))
	require.NoError(t, err, "source archive staged under SOURCES")

	args := recordedArgs(t, argsFile)
	require.Len(t, args, 4)
	assert.Equal(t, "-ba", args[0])
	assert.Equal(t, "--define", args[1])
	assert.Equal(t, "_topdir "+staging, args[2])
	assert.Equal(t, result.SpecPath, args[3])

	assert.Contains(t, out.String(), "[1/7]")
	assert.Contains(t, out.String(), "[7/7]")
	assert.Empty(t, errBuf.String(), "no reconciliation warnings expected")
}

func TestPipelineRun_SrpmOnly(t *testing.T) {
	repoDir, _ := initTestRepo(t)
	argsFile := filepath.Join(t.TempDir(), "args.json")
	testutil.SetHelperEnv(t, testutil.HelperProcessConfig{ArgsFile: argsFile})

	p := &Pipeline{
		Config:   pipelineConfig(repoDir),
		Distro:   "suse",
		Boot:     "systemd",
		SrpmOnly: true,
		Verbose:  true,
		Out:      &bytes.Buffer{},
		Err:      &bytes.Buffer{},
	}

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	args := recordedArgs(t, argsFile)
	assert.Equal(t, "-bs", args[0])
}

func TestPipelineRun_NoArtifactsSkipsOutputDir(t *testing.T) {
	repoDir, _ := initTestRepo(t)
	testutil.SetHelperEnv(t, testutil.HelperProcessConfig{})

	cfg := pipelineConfig(repoDir)
	cfg.OutputDir = filepath.Join(t.TempDir(), "dist")

	p := &Pipeline{
		Config:  cfg,
		Distro:  "redhat",
		Verbose: true,
		Out:     &bytes.Buffer{},
		Err:     &bytes.Buffer{},
	}

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Artifacts, "mocked builder produces no packages")
	_, err = os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(err), "output directory is not created when there is nothing to copy")
}

func TestPipelineRun_SubReleaseAndPatches(t *testing.T) {
	repoDir, _ := initTestRepo(t)
	testutil.SetHelperEnv(t, testutil.HelperProcessConfig{})

	patch := filepath.Join(t.TempDir(), "0001-fix-datasource.patch")
	require.NoError(t, os.WriteFile(patch, []byte("--- a\n+++ b\n"), 0o644))

	p := &Pipeline{
		Config:     pipelineConfig(repoDir),
		Distro:     "redhat",
		SubRelease: 2,
		Patches:    []string{patch},
		Verbose:    true,
		Out:        &bytes.Buffer{},
		Err:        &bytes.Buffer{},
	}

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	rendered, err := os.ReadFile(result.SpecPath)
	require.NoError(t, err)
	spec := string(rendered)
	assert.Contains(t, spec, "Release:        1.2")
	assert.Contains(t, spec, "Patch0:         0001-fix-datasource.patch")

	staging := filepath.Dir(filepath.Dir(result.SpecPath))
	staged := filepath.Join(staging, "SOURCES", "0001-fix-datasource.patch")
	_, err = os.Stat(staged)
	require.NoError(t, err, "patch staged under SOURCES")
}

func TestPipelineRun_MissingChangelog(t *testing.T) {
	repoDir, _ := initTestRepo(t)
	testutil.SetHelperEnv(t, testutil.HelperProcessConfig{})

	cfg := pipelineConfig(repoDir)
	cfg.Changelog = "NoSuchChangeLog"

	p := &Pipeline{Config: cfg, Distro: "redhat", Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
	_, err := p.Run(context.Background())
	require.Error(t, err)

	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.Configuration, cliErr.Category)
}

func TestPipelineRun_UnknownDistro(t *testing.T) {
	repoDir, _ := initTestRepo(t)
	testutil.SetHelperEnv(t, testutil.HelperProcessConfig{})

	p := &Pipeline{Config: pipelineConfig(repoDir), Distro: "gentoo", Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
	_, err := p.Run(context.Background())
	require.Error(t, err)

	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.Argument, cliErr.Category)
}

func TestPipelineRun_BuilderFailure(t *testing.T) {
	repoDir, _ := initTestRepo(t)
	testutil.SetHelperEnv(t, testutil.HelperProcessConfig{
		ExitCode: 1,
		Stdout:   "error: Bad exit status\n",
	})

	var errBuf bytes.Buffer
	p := &Pipeline{Config: pipelineConfig(repoDir), Distro: "redhat", Out: &bytes.Buffer{}, Err: &errBuf}
	_, err := p.Run(context.Background())
	require.Error(t, err)

	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.External, cliErr.Category)
	assert.True(t, strings.Contains(errBuf.String(), "Bad exit status"),
		"captured builder output is replayed on failure")
}

func TestPipelineRun_NotARepository(t *testing.T) {
	testutil.SetHelperEnv(t, testutil.HelperProcessConfig{})

	cfg := pipelineConfig(t.TempDir())
	p := &Pipeline{Config: cfg, Distro: "redhat", Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
	_, err := p.Run(context.Background())
	require.Error(t, err)

	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.Configuration, cliErr.Category)
}
