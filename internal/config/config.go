// Package config provides configuration management for brpm using koanf.
// Configuration is loaded with priority: environment variables (BRPM_ prefix)
// > project config (.brpm/config.yml) > defaults. The loaded Config is passed
// explicitly through the build pipeline; nothing reads configuration
// ambiently after load.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	envPrefix = "BRPM_"

	// ProjectConfigPath is the default project config location, relative to
	// the working directory.
	ProjectConfigPath = ".brpm/config.yml"
)

// Config represents the brpm build configuration.
type Config struct {
	// Name is the package name used for the spec, archive, and artifacts.
	Name string `koanf:"name" yaml:"name"`

	// RepoPath locates the source repository. The repository root is
	// discovered from here; empty means the current working directory.
	RepoPath string `koanf:"repo_path" yaml:"repo_path"`

	// Changelog is the upstream changelog path, relative to the repo root.
	Changelog string `koanf:"changelog" yaml:"changelog"`

	// TemplatePath overrides the built-in spec template for the target
	// distribution. Empty uses the embedded template.
	TemplatePath string `koanf:"template_path" yaml:"template_path"`

	// StagingDir is the rpmbuild _topdir. It is wiped and recreated at the
	// start of every run. Relative paths resolve against the repo root.
	StagingDir string `koanf:"staging_dir" yaml:"staging_dir"`

	// OutputDir receives finished packages. Empty leaves them in the
	// staging tree.
	OutputDir string `koanf:"output_dir" yaml:"output_dir"`

	// Release is the base RPM release label. An optional sub-release is
	// appended as ".<n>".
	Release string `koanf:"release" yaml:"release"`

	// Dependencies are upstream dependency names, translated to
	// distribution package names per target distro.
	Dependencies []string `koanf:"dependencies" yaml:"dependencies"`

	// Includes are extra files the spec template installs, relative to the
	// source tree.
	Includes []string `koanf:"includes" yaml:"includes"`

	// RPMBuildCmd is the package builder invocation.
	RPMBuildCmd string `koanf:"rpmbuild_cmd" yaml:"rpmbuild_cmd"`
}

// Load loads configuration from defaults, the project config file, and
// environment variables. projectPath overrides the default config location;
// when set explicitly, the file must exist.
func Load(projectPath string) (*Config, error) {
	k := koanf.New(".")

	loadDefaults(k)

	path := projectPath
	if path == "" {
		path = ProjectConfigPath
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	} else if projectPath != "" {
		return nil, fmt.Errorf("config file %s: %w", projectPath, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// envTransform maps BRPM_STAGING_DIR to staging_dir.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// ToYAML renders the effective configuration as YAML.
func (c *Config) ToYAML() (string, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	return string(data), nil
}
