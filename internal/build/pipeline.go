package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/the-gball/cloud-init-rax-pkg/internal/changelog"
	"github.com/the-gball/cloud-init-rax-pkg/internal/config"
	apperrors "github.com/the-gball/cloud-init-rax-pkg/internal/errors"
	"github.com/the-gball/cloud-init-rax-pkg/internal/output"
	"github.com/the-gball/cloud-init-rax-pkg/internal/rpm"
	"github.com/the-gball/cloud-init-rax-pkg/internal/vcs"
)

// Pipeline is one end-to-end package build: version derivation, changelog
// reconciliation, staging, source archival, spec rendering, and the rpmbuild
// run. It executes as a single synchronous pass with no retries; a failure
// at any step aborts the build.
type Pipeline struct {
	Config     *config.Config
	Distro     string
	Boot       string
	SubRelease int
	Patches    []string
	SrpmOnly   bool
	Verbose    bool
	Out        io.Writer
	Err        io.Writer
}

// Result describes a completed build.
type Result struct {
	Version   string
	Revision  string
	SpecPath  string
	Artifacts []string
}

const totalSteps = 7

// Run executes the pipeline.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if p.Out == nil {
		p.Out = os.Stdout
	}
	if p.Err == nil {
		p.Err = os.Stderr
	}

	src, err := vcs.Open(p.Config.RepoPath)
	if err != nil {
		return nil, apperrors.WrapWithMessage(err, apperrors.Configuration,
			"resolving repository root",
			"Run brpm from inside the source repository, or set repo_path in .brpm/config.yml")
	}
	root := src.Root()

	output.PrintStep(p.Out, 1, totalSteps, "Deriving version from "+p.Config.Changelog)
	raw, err := os.ReadFile(filepath.Join(root, p.Config.Changelog))
	if err != nil {
		return nil, apperrors.WrapWithMessage(err, apperrors.Configuration,
			"reading upstream changelog",
			"Check the changelog path in .brpm/config.yml")
	}
	text := string(raw)

	version, err := changelog.LatestVersion(text)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Parse)
	}

	revision, err := p.resolveRevision(src, version)
	if err != nil {
		return nil, err
	}

	output.PrintStep(p.Out, 2, totalSteps, "Reconciling changelog against tags")
	reconciler := &changelog.Reconciler{Source: src, Warn: p.Err}
	block, err := reconciler.Reconcile(text)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Parse)
	}

	output.PrintStep(p.Out, 3, totalSteps, "Assembling package metadata for "+p.Distro)
	translator, err := rpm.TranslatorFor(p.Distro)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Argument)
	}
	subs, err := rpm.Assemble(rpm.Metadata{
		Name:         p.Config.Name,
		Version:      version,
		Revision:     revision,
		Release:      p.Config.Release,
		SubRelease:   p.SubRelease,
		BootSystem:   p.Boot,
		Dependencies: p.Config.Dependencies,
		Changelog:    block,
		Includes:     p.Config.Includes,
		Patches:      p.Patches,
	}, translator)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Configuration,
			"Add the missing dependency mapping, or remove the dependency from .brpm/config.yml")
	}

	output.PrintStep(p.Out, 4, totalSteps, "Creating staging tree")
	staging := p.stagingRoot(root)
	if err := CreateTree(staging); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Configuration)
	}

	output.PrintStep(p.Out, 5, totalSteps, "Archiving source tree")
	archivePath := filepath.Join(SourcesDir(staging), subs.ArchiveName)
	prefix := fmt.Sprintf("%s-%s", p.Config.Name, version)
	if err := ArchiveSource(root, archivePath, prefix, staging); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Configuration)
	}
	if _, err := CopyPatches(staging, p.Patches); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Configuration)
	}

	output.PrintStep(p.Out, 6, totalSteps, "Rendering spec file")
	specPath, err := p.renderSpec(staging, subs)
	if err != nil {
		return nil, err
	}

	output.PrintStep(p.Out, 7, totalSteps, "Running rpmbuild")
	runner := &Runner{
		Command: p.Config.RPMBuildCmd,
		Verbose: p.Verbose,
		Out:     p.Out,
		Err:     p.Err,
	}
	if err := runner.Build(ctx, staging, specPath, p.SrpmOnly); err != nil {
		return nil, apperrors.Wrap(err, apperrors.External,
			"Inspect the rpmbuild output above; brpm does not retry failed builds")
	}

	artifacts, err := Artifacts(staging)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.External)
	}
	if p.Config.OutputDir != "" && len(artifacts) > 0 {
		artifacts, err = CopyArtifacts(artifacts, p.Config.OutputDir)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.Configuration)
		}
	}

	return &Result{
		Version:   version,
		Revision:  revision,
		SpecPath:  specPath,
		Artifacts: artifacts,
	}, nil
}

// resolveRevision returns the revision for the packaged version: the
// matching tag when one exists, otherwise the branch head (the newest
// changelog version is typically not tagged yet).
func (p *Pipeline) resolveRevision(src vcs.Source, version string) (string, error) {
	resolver := changelog.NewTagResolver(src)
	revision, ok, err := resolver.Resolve(version)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.External)
	}
	if ok {
		return revision, nil
	}
	revision, err = src.Head()
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.External)
	}
	return revision, nil
}

// stagingRoot resolves the configured staging directory against the repo
// root when it is relative.
func (p *Pipeline) stagingRoot(repoRoot string) string {
	staging := p.Config.StagingDir
	if !filepath.IsAbs(staging) {
		staging = filepath.Join(repoRoot, staging)
	}
	return staging
}

// renderSpec renders the spec template into the SPECS directory and returns
// the written path.
func (p *Pipeline) renderSpec(staging string, subs *rpm.Substitutions) (string, error) {
	var content []byte
	var err error
	if p.Config.TemplatePath != "" {
		content, err = os.ReadFile(p.Config.TemplatePath)
		if err != nil {
			return "", apperrors.WrapWithMessage(err, apperrors.Configuration, "reading spec template")
		}
	} else {
		content, err = rpm.DefaultTemplate(p.Distro)
		if err != nil {
			return "", apperrors.Wrap(err, apperrors.Argument)
		}
	}

	rendered, err := rpm.RenderSpec(content, subs)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.Parse)
	}

	specPath := filepath.Join(SpecsDir(staging), p.Config.Name+".spec")
	if err := os.WriteFile(specPath, rendered, 0o644); err != nil {
		return "", apperrors.WrapWithMessage(err, apperrors.Configuration, "writing spec file")
	}
	return specPath, nil
}
