package rpm

import (
	"fmt"
	"path/filepath"
)

// Metadata is everything gathered for one package build before rendering:
// version and revision from the repository, the reconciled changelog block,
// raw dependency names, and the build options.
type Metadata struct {
	Name         string
	Version      string
	Revision     string
	Release      string
	SubRelease   int
	BootSystem   string
	Dependencies []string
	Changelog    string
	Includes     []string
	Patches      []string
}

// Substitutions is the key-to-value set handed to the spec template renderer.
type Substitutions struct {
	Name        string
	Version     string
	Revision    string
	Release     string
	ArchiveName string
	Requires    []string
	Changelog   string
	Sysvinit    bool
	Systemd     bool
	Includes    []string
	Patches     []string
}

// ArchiveName returns the source tarball filename rpmbuild's %setup expects.
func ArchiveName(name, version string) string {
	return fmt.Sprintf("%s-%s.tar.gz", name, version)
}

// Assemble translates the raw dependency list for the target distribution
// and derives the remaining substitution values from the gathered metadata.
// An unmapped dependency name or an unknown boot system is an error.
func Assemble(meta Metadata, translator Translator) (*Substitutions, error) {
	requires, err := TranslateAll(translator, meta.Dependencies)
	if err != nil {
		return nil, err
	}

	release := meta.Release
	if release == "" {
		release = "1"
	}
	if meta.SubRelease > 0 {
		release = fmt.Sprintf("%s.%d", release, meta.SubRelease)
	}

	boot := meta.BootSystem
	if boot == "" {
		boot = BootSysvinit
	}
	if boot != BootSysvinit && boot != BootSystemd {
		return nil, fmt.Errorf("unsupported boot system %q (supported: %s, %s)",
			boot, BootSysvinit, BootSystemd)
	}

	// Patches are referenced by base name; the files themselves are staged
	// into SOURCES alongside the archive.
	patches := make([]string, 0, len(meta.Patches))
	for _, p := range meta.Patches {
		patches = append(patches, filepath.Base(p))
	}

	return &Substitutions{
		Name:        meta.Name,
		Version:     meta.Version,
		Revision:    meta.Revision,
		Release:     release,
		ArchiveName: ArchiveName(meta.Name, meta.Version),
		Requires:    requires,
		Changelog:   meta.Changelog,
		Sysvinit:    boot == BootSysvinit,
		Systemd:     boot == BootSystemd,
		Includes:    meta.Includes,
		Patches:     patches,
	}, nil
}
