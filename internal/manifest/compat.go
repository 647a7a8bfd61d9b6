package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/newproject-dev/new-project/internal/branding"
)

// ErrIncompatible is returned when a template requires a different tool version.
var ErrIncompatible = errors.New("template requires a different version")

// CheckCompatible verifies the running version against the "requires"
// constraint. Versions that are not semver (development builds) always pass.
func (c *TemplateConfig) CheckCompatible(version string) error {
	if c.Requires == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("%w: requires %q: %w", ErrInvalid, c.Requires, err)
	}

	v, err := parseSemver(version)
	if err != nil {
		return nil
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s %s needed, running %s", ErrIncompatible, branding.CLIName(), c.Requires, version)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
