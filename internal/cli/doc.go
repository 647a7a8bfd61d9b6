// Package cli defines the Cobra command tree for the new-project CLI. The
// root command runs the scaffolding pipeline; version, config and check are
// small subcommands. Commands delegate to internal packages for the work and
// only handle flag parsing, I/O formatting and user interaction.
package cli
