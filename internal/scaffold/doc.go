// Package scaffold creates a new project from a template directory. It powers
// the root new-project command: load the template config, prompt for its
// parameters, classify every template entry as excluded, rendered or copied,
// and only then materialize the project tree in three batches (directories,
// rendered templates held in memory, file writes) so that a failing template
// never leaves a half-written project behind.
package scaffold
