package config

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"name":          "cloud-init",
		"repo_path":     "",
		"changelog":     "ChangeLog",
		"template_path": "",
		// staging_dir: rpmbuild _topdir, wiped on every run. Kept under the
		// repo by default so nothing touches system-wide rpmbuild state.
		"staging_dir": ".brpm/rpmbuild",
		"output_dir":  "",
		"release":     "1",
		// dependencies: upstream names; the distro translation tables must
		// know every name listed here.
		"dependencies": []string{
			"argparse",
			"cheetah",
			"configobj",
			"jsonpatch",
			"oauth",
			"prettytable",
			"pyserial",
			"pyyaml",
			"requests",
		},
		"includes":     []string{},
		"rpmbuild_cmd": "rpmbuild",
	}
}

// GetDefaultConfigTemplate returns a commented config template that
// documents all available options.
func GetDefaultConfigTemplate() string {
	return `# brpm configuration
# Values here are overridden by BRPM_* environment variables.

name: cloud-init                # Package name for spec, archive, and artifacts
repo_path: ""                   # Source repository (empty = current directory)
changelog: ChangeLog            # Upstream changelog, relative to repo root
template_path: ""               # Custom spec template (empty = built-in per distro)
staging_dir: .brpm/rpmbuild     # rpmbuild _topdir, wiped every run
output_dir: ""                  # Where finished packages go (empty = staging tree)
release: "1"                    # Base RPM release label

# Upstream dependency names, translated per target distribution
dependencies:
  - argparse
  - cheetah
  - configobj
  - jsonpatch
  - oauth
  - prettytable
  - pyserial
  - pyyaml
  - requests

includes: []                    # Extra files the spec template installs
rpmbuild_cmd: rpmbuild          # Package builder invocation
`
}
