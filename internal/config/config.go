package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/newproject-dev/new-project/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized setting keys.
const (
	KeyVerbosity = "verbosity"
	KeyContext   = "context"
)

// Dir returns the path to the settings directory under the XDG config home.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, branding.SettingsDir())
}

// FilePath returns the full path to the settings file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the settings directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the settings file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyVerbosity, 0)

	// Ignore error if the settings file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a setting by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Verbosity returns the default log verbosity used when no -v flag is given.
func Verbosity() int {
	return viper.GetInt(KeyVerbosity)
}

// ContextOverrides returns the user's context overrides. Keys are
// lowercased by Viper.
func ContextOverrides() map[string]string {
	return viper.GetStringMapString(KeyContext)
}

// Set writes a key-value pair and saves the settings file. Dotted keys such
// as "context.git_user_name" are stored as nested mappings.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
