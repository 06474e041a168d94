package gentpl

import (
	"io/fs"

	"github.com/goliatone/go-gentpl/pkg/render/builtin"
)

// EmbeddedTemplates exposes the built-in templates (header, OpenAPI
// operations table) so callers can mount them into their own engines.
func EmbeddedTemplates() fs.FS {
	return builtin.Templates()
}
