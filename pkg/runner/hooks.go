package runner

import (
	"context"
	"strings"

	"github.com/goliatone/go-gentpl/pkg/diag"
	"github.com/goliatone/go-gentpl/pkg/output"
)

// Emitter produces the generated text for one run. It may report
// diagnostics through the Context, write partial output into the
// Context's buffer, or return a TransformationError.
type Emitter interface {
	Emit(rc *Context) (string, error)
}

// Initializer runs before validation, e.g. to resolve injected context.
type Initializer interface {
	Initialize(rc *Context) error
}

// Validator checks preconditions and reports problems via rc.Errorf and
// rc.Warningf. An Error diagnostic skips emission.
type Validator interface {
	Validate(rc *Context) error
}

// EmitFunc adapts a function to Emitter.
type EmitFunc func(rc *Context) (string, error)

func (f EmitFunc) Emit(rc *Context) (string, error) { return f(rc) }

// InitializeFunc adapts a function to Initializer.
type InitializeFunc func(rc *Context) error

func (f InitializeFunc) Initialize(rc *Context) error { return f(rc) }

// ValidateFunc adapts a function to Validator.
type ValidateFunc func(rc *Context) error

func (f ValidateFunc) Validate(rc *Context) error { return f(rc) }

// RenderingFunc observes a Runner right before Render makes its enable
// decision. Observers may reconfigure the runner's Output descriptor.
type RenderingFunc func(r *Runner)

// Context is the per-run view handed to hooks and emitters. It is only valid
// for the duration of the run that created it.
type Context struct {
	ctx    context.Context
	runner *Runner
}

var _ diag.Reporter = (*Context)(nil)

// Context returns the caller's context.Context.
func (rc *Context) Context() context.Context {
	return rc.ctx
}

// Name returns the runner name.
func (rc *Context) Name() string {
	return rc.runner.name
}

// Output returns a copy of the runner's output descriptor.
func (rc *Context) Output() output.Descriptor {
	return rc.runner.output.Clone()
}

// Errorf records an Error diagnostic.
func (rc *Context) Errorf(format string, args ...any) {
	rc.runner.diagnostics.Errorf(format, args...)
}

// Warningf records a Warning diagnostic.
func (rc *Context) Warningf(format string, args ...any) {
	rc.runner.diagnostics.Warningf(format, args...)
}

// HasErrors reports whether the run has recorded an Error so far.
func (rc *Context) HasErrors() bool {
	return rc.runner.diagnostics.HasErrors()
}

// Write appends to the generation buffer.
func (rc *Context) Write(p []byte) (int, error) {
	return rc.runner.buffer.Write(p)
}

// WriteString appends to the generation buffer.
func (rc *Context) WriteString(s string) (int, error) {
	return rc.runner.buffer.WriteString(s)
}

// String returns the generation buffer contents.
func (rc *Context) String() string {
	return rc.runner.buffer.String()
}

// Buffer exposes the generation buffer for emitters that stream output.
func (rc *Context) Buffer() *strings.Builder {
	return &rc.runner.buffer
}
