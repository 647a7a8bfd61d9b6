// Package config manages user-level settings stored at
// $XDG_CONFIG_HOME/new-project/config.yaml. It provides functions to load,
// read, and write keys such as the default log verbosity and the context
// overrides layered on top of the environment facts of every run.
package config
