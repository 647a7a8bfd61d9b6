// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only needs to edit that file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	SettingsDir    string `yaml:"settings_dir"`
	ConfigBaseName string `yaml:"config_base_name"`
	EnvPrefix      string `yaml:"env_prefix"`
	GoModule       string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:        "new-project",
			DisplayName:    "new-project",
			Description:    "Scaffold a new project from a template directory",
			SettingsDir:    "new-project",
			ConfigBaseName: ".new-project",
			EnvPrefix:      "NEW_PROJECT",
			GoModule:       "github.com/newproject-dev/new-project",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "new-project").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// SettingsDir returns the directory name used under the XDG config home.
func SettingsDir() string { load(); return defaults.SettingsDir }

// ConfigBaseName returns the base name of the per-template configuration
// file (e.g., ".new-project").
func ConfigBaseName() string { load(); return defaults.ConfigBaseName }

// EnvPrefix returns the environment variable prefix (e.g., "NEW_PROJECT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("verbosity") → "NEW_PROJECT_VERBOSITY".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
