// Package manifest locates, parses and validates the optional configuration
// file of a template directory. The file declares which paths are rendered
// through the template engine, which are excluded from the output, and the
// parameters the user is prompted for, in declaration order.
package manifest
