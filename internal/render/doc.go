// Package render is the boundary to the template engine. The pipeline only
// depends on the Engine interface; the default implementation is Go's
// text/template with strict missing-key semantics and the sprig function
// library.
package render
