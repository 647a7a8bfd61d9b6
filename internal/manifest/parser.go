package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/newproject-dev/new-project/internal/branding"
	"github.com/newproject-dev/new-project/internal/logging"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// ErrInvalid marks a config file that exists but is not a valid document.
var ErrInvalid = errors.New("invalid template config")

// CandidateNames returns the config file names looked up inside a template
// directory, in lookup order.
func CandidateNames() []string {
	base := branding.ConfigBaseName()
	return []string{base, base + ".yaml", base + ".yml"}
}

// Load finds the first existing candidate config file in templateDir and
// parses it. Remaining candidates are ignored even if they exist. A template
// without any candidate gets the zero TemplateConfig.
func Load(templateDir string) (*TemplateConfig, error) {
	return LoadFS(afero.NewOsFs(), templateDir)
}

// LoadFS is Load on an arbitrary filesystem.
func LoadFS(fsys afero.Fs, templateDir string) (*TemplateConfig, error) {
	logger := logging.GetLogger("manifest")

	path, err := Locate(fsys, templateDir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		logger.Debug().Str("template", templateDir).Msg("no template config, copying everything")
		return &TemplateConfig{}, nil
	}

	logger.Debug().Str("path", path).Msg("loading template config")
	return parseFile(fsys, path)
}

// Locate returns the path of the config file Load would read, or "" when
// templateDir has none. Candidates that are not regular files are skipped.
func Locate(fsys afero.Fs, templateDir string) (string, error) {
	for _, name := range CandidateNames() {
		path := filepath.Join(templateDir, name)
		info, err := fsys.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("checking config file %s: %w", path, err)
		}
		if info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", nil
}

// ParseFile reads and parses a config file.
func ParseFile(path string) (*TemplateConfig, error) {
	return parseFile(afero.NewOsFs(), path)
}

func parseFile(fsys afero.Fs, path string) (*TemplateConfig, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse validates data against the config schema and decodes it. An empty
// document is an empty config.
func Parse(data []byte) (*TemplateConfig, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, result.Summary())
	}

	var cfg TemplateConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &cfg, nil
}
