// Package rpm assembles package metadata and renders RPM spec files.
package rpm

import (
	"fmt"
	"strings"
)

// Supported target distributions.
const (
	DistroRedhat = "redhat"
	DistroSuse   = "suse"
)

// Supported boot init systems.
const (
	BootSysvinit = "sysvinit"
	BootSystemd  = "systemd"
)

// Distros returns the supported target distributions.
func Distros() []string {
	return []string{DistroRedhat, DistroSuse}
}

// BootSystems returns the supported boot init systems.
func BootSystems() []string {
	return []string{BootSysvinit, BootSystemd}
}

// Translator maps upstream dependency names to distribution package names.
// One instance exists per supported distribution.
type Translator interface {
	// Translate returns the distribution package for an upstream dependency
	// name. Lookup is case-insensitive. An unmapped name is an error: the
	// build cannot proceed without knowing the real package name.
	Translate(name string) (string, error)
	// Distro returns the distribution this translator targets.
	Distro() string
}

// packageTables is the static per-distribution dependency translation table.
// Keys are lowercase upstream names.
var packageTables = map[string]map[string]string{
	DistroRedhat: {
		"argparse":    "python-argparse",
		"cheetah":     "python-cheetah",
		"configobj":   "python-configobj",
		"jsonpatch":   "python-jsonpatch",
		"oauth":       "python-oauth",
		"prettytable": "python-prettytable",
		"pyserial":    "pyserial",
		"pyyaml":      "PyYAML",
		"requests":    "python-requests",
	},
	DistroSuse: {
		"argparse":    "python-argparse",
		"cheetah":     "python-cheetah",
		"configobj":   "python-configobj",
		"jsonpatch":   "python-jsonpatch",
		"oauth":       "python-oauth",
		"prettytable": "python-prettytable",
		"pyserial":    "python-pyserial",
		"pyyaml":      "python-yaml",
		"requests":    "python-requests",
	},
}

type tableTranslator struct {
	distro string
	table  map[string]string
}

// TranslatorFor returns the dependency translator for a target distribution.
func TranslatorFor(distro string) (Translator, error) {
	table, ok := packageTables[distro]
	if !ok {
		return nil, fmt.Errorf("unsupported distribution %q (supported: %s)",
			distro, strings.Join(Distros(), ", "))
	}
	return &tableTranslator{distro: distro, table: table}, nil
}

func (t *tableTranslator) Distro() string {
	return t.distro
}

func (t *tableTranslator) Translate(name string) (string, error) {
	pkg, ok := t.table[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("no %s package known for dependency %q", t.distro, name)
	}
	return pkg, nil
}

// TranslateAll translates every raw dependency name, preserving order.
// The first unmapped name aborts the translation.
func TranslateAll(t Translator, names []string) ([]string, error) {
	translated := make([]string, 0, len(names))
	for _, name := range names {
		pkg, err := t.Translate(name)
		if err != nil {
			return nil, err
		}
		translated = append(translated, pkg)
	}
	return translated, nil
}
