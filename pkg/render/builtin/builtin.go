// Package builtin ships templates that are always available to the default
// engine under the "gentpl/" prefix, e.g. {% include "gentpl/header.tpl" %}.
package builtin

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embedded embed.FS

// Templates returns the built-in templates rooted so that names start with
// "gentpl/".
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return embedded
	}
	return sub
}
