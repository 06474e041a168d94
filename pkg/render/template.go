package render

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-gentpl/pkg/render/template"
	"github.com/goliatone/go-gentpl/pkg/runner"
)

// Template emits text by executing a named or inline template through a
// TemplateRenderer. It implements runner.Initializer and runner.Validator, so
// a Runner built around it resolves context loaders before validation and
// checks required parameters before emission.
//
// Data visible to the template, lowest precedence first: renderer globals,
// loaded context, Params, and the reserved "output" key describing the
// destination.
type Template struct {
	Renderer template.TemplateRenderer

	// Name selects a template loaded by the renderer.
	Name string

	// Source is inline template content. It takes precedence over Name.
	Source string

	// Params are caller supplied template parameters.
	Params map[string]any

	// Required lists parameter names that must be present and non-empty.
	Required []string

	// Loaders run during Initialize; their results are merged in order.
	Loaders []ContextLoader

	context map[string]any
}

var (
	_ runner.Emitter     = (*Template)(nil)
	_ runner.Initializer = (*Template)(nil)
	_ runner.Validator   = (*Template)(nil)
)

// Initialize runs the context loaders. Loader failures are reported as
// expected failures since they usually point at bad input paths.
func (t *Template) Initialize(rc *runner.Context) error {
	t.context = make(map[string]any)
	for idx, loader := range t.Loaders {
		if loader == nil {
			continue
		}
		data, err := loader.LoadContext(rc.Context())
		if err != nil {
			return runner.Fail(fmt.Errorf("load template context #%d: %w", idx, err))
		}
		t.context = mergeData(t.context, data)
	}
	return nil
}

// Validate reports missing required parameters and an unusable template
// selection.
func (t *Template) Validate(rc *runner.Context) error {
	if t.Renderer == nil {
		rc.Errorf("no template renderer configured")
	}

	name := strings.TrimSpace(t.Name)
	source := strings.TrimSpace(t.Source)
	switch {
	case name == "" && source == "":
		rc.Errorf("template name or inline source is required")
	case name != "" && source != "":
		rc.Warningf("both template %q and inline source set; using inline source", name)
	}

	for _, key := range t.Required {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if isEmptyParam(t.Params[key]) {
			rc.Errorf("required parameter %s is missing", key)
		}
	}
	return nil
}

// Emit executes the template. Engine errors (syntax, missing templates,
// failing filters) become expected failures.
func (t *Template) Emit(rc *runner.Context) (string, error) {
	data := mergeData(nil, t.context, t.Params)
	out := rc.Output()
	data["output"] = map[string]any{
		"path":      out.Path,
		"directory": out.Directory,
		"resolved":  out.Resolve(),
	}

	var (
		text string
		err  error
	)
	if strings.TrimSpace(t.Source) != "" {
		text, err = t.Renderer.RenderString(t.Source, data, rc)
	} else {
		text, err = t.Renderer.RenderTemplate(strings.TrimSpace(t.Name), data, rc)
	}
	if err != nil {
		return "", runner.Fail(err)
	}
	return text, nil
}

func isEmptyParam(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
