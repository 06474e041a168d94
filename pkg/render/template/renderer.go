package template

import (
	"io"
)

// TemplateRenderer is the text emission seam used by template runs. Render
// treats its first argument as inline template content when it contains
// template tags and as a template name otherwise.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
