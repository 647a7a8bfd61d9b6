// Package prompt collects template parameter values from the user. Each
// parameter is asked for once, in declaration order, with its default
// rendered against the values resolved so far.
package prompt
