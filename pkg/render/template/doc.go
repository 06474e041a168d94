// Package template defines the engine-agnostic contract for turning a named
// or inline template plus data into text. The pongo2 implementation lives in
// the gotemplate subpackage.
package template
