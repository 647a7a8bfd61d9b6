// Package vcs reads the user's version-control identity.
package vcs

import (
	"fmt"

	"github.com/go-git/go-git/v5/config"
)

// Identity is the author identity configured for git.
type Identity struct {
	Name  string
	Email string
}

// IdentitySource yields the identity to expose to templates.
type IdentitySource interface {
	Identity() (Identity, error)
}

// GlobalConfig reads user.name and user.email from the global git
// configuration (~/.gitconfig and the XDG git config file).
type GlobalConfig struct{}

// Identity loads the global git configuration. Unset keys come back empty.
func (GlobalConfig) Identity() (Identity, error) {
	cfg, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		return Identity{}, fmt.Errorf("loading global git config: %w", err)
	}
	return Identity{Name: cfg.User.Name, Email: cfg.User.Email}, nil
}

// Static is a fixed identity, used when the environment should not be read.
type Static Identity

// Identity returns the fixed identity.
func (s Static) Identity() (Identity, error) {
	return Identity(s), nil
}
