package runner

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-gentpl/pkg/diag"
	"github.com/goliatone/go-gentpl/pkg/output"
)

// State tracks where a run is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateInitializing
	StateValidating
	StateGenerating
	StateFailed
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateValidating:
		return "validating"
	case StateGenerating:
		return "generating"
	case StateFailed:
		return "failed"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Option configures a Runner.
type Option func(*Runner)

// WithName labels the runner; the name is stamped on its diagnostics.
func WithName(name string) Option {
	return func(r *Runner) {
		r.name = strings.TrimSpace(name)
	}
}

// WithRouter sets the output routing collaborator used by Render.
func WithRouter(router output.Router) Option {
	return func(r *Runner) {
		r.router = router
	}
}

// WithInitializer overrides the Initializer discovered on the emitter.
func WithInitializer(init Initializer) Option {
	return func(r *Runner) {
		r.initializer = init
	}
}

// WithValidator overrides the Validator discovered on the emitter.
func WithValidator(v Validator) Option {
	return func(r *Runner) {
		r.validator = v
	}
}

// WithEnabled sets the initial enable gate. Runners are enabled by default.
func WithEnabled(enabled bool) Option {
	return func(r *Runner) {
		r.enabled = enabled
	}
}

// WithOutput seeds the output descriptor.
func WithOutput(desc output.Descriptor) Option {
	return func(r *Runner) {
		r.output = desc.Clone()
	}
}

// WithLogger injects a zap logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPersistOnError controls whether Render hands text to the router when
// the run recorded an Error diagnostic. Defaults to true: the router still
// receives whatever partial or empty text the run produced.
func WithPersistOnError(enabled bool) Option {
	return func(r *Runner) {
		r.persistOnError = enabled
	}
}

// WithIfAbsent makes Render and RenderToFile keep an existing destination,
// as RenderToFileIfNotExists always does.
func WithIfAbsent(enabled bool) Option {
	return func(r *Runner) {
		r.ifAbsent = enabled
	}
}

// WithRenderingObserver registers an observer at construction time.
func WithRenderingObserver(fn RenderingFunc) Option {
	return func(r *Runner) {
		r.OnRendering(fn)
	}
}

// Runner drives the lifecycle of one template:
// initialize, validate, generate, collect diagnostics and, when enabled,
// hand the text to output routing.
//
// A Runner is not safe for concurrent use. Every Transform resets its
// diagnostics and buffer, so one instance can be reused for sequential runs.
type Runner struct {
	name        string
	emitter     Emitter
	initializer Initializer
	validator   Validator
	router      output.Router
	logger      *zap.Logger

	enabled        bool
	persistOnError bool
	ifAbsent       bool
	output         output.Descriptor
	observers      []RenderingFunc

	diagnostics diag.Diagnostics
	buffer      strings.Builder
	state       State
	failed      bool
}

// New constructs a Runner around emitter. When the emitter also implements
// Initializer or Validator those hooks are used unless overridden by options.
func New(emitter Emitter, options ...Option) *Runner {
	r := &Runner{
		emitter:        emitter,
		enabled:        true,
		persistOnError: true,
		logger:         zap.NewNop(),
	}
	if init, ok := emitter.(Initializer); ok {
		r.initializer = init
	}
	if v, ok := emitter.(Validator); ok {
		r.validator = v
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.diagnostics.SetSource(r.name)
	return r
}

// Name returns the runner name.
func (r *Runner) Name() string {
	return r.name
}

// Enabled reports the enable gate.
func (r *Runner) Enabled() bool {
	return r.enabled
}

// SetEnabled flips the enable gate. A disabled runner still notifies
// rendering observers but never generates or persists.
func (r *Runner) SetEnabled(enabled bool) {
	r.enabled = enabled
}

// IfAbsent reports whether Render keeps an existing destination.
func (r *Runner) IfAbsent() bool {
	return r.ifAbsent
}

// SetIfAbsent switches Render between overwrite and if-absent persistence.
func (r *Runner) SetIfAbsent(enabled bool) {
	r.ifAbsent = enabled
}

// Output returns the mutable output descriptor owned by this runner.
func (r *Runner) Output() *output.Descriptor {
	return &r.output
}

// Diagnostics returns a copy of the diagnostics from the most recent run.
func (r *Runner) Diagnostics() []diag.Diagnostic {
	return r.diagnostics.Items()
}

// HasErrors reports whether the most recent run recorded an Error.
func (r *Runner) HasErrors() bool {
	return r.diagnostics.HasErrors()
}

// State returns the last lifecycle state reached.
func (r *Runner) State() State {
	return r.state
}

// LastRunFailed reports whether the most recent run went through the failed
// state, either by a validation Error or a caught TransformationError.
func (r *Runner) LastRunFailed() bool {
	return r.failed
}

// Errorf records an Error diagnostic on the current run.
func (r *Runner) Errorf(format string, args ...any) {
	r.diagnostics.Errorf(format, args...)
}

// Warningf records a Warning diagnostic on the current run.
func (r *Runner) Warningf(format string, args ...any) {
	r.diagnostics.Warningf(format, args...)
}

// OnRendering registers an observer fired at the start of every Render, in
// registration order.
func (r *Runner) OnRendering(fn RenderingFunc) {
	if fn == nil {
		return
	}
	r.observers = append(r.observers, fn)
}

// Transform runs one generation attempt with a background context.
func (r *Runner) Transform() (string, error) {
	return r.TransformContext(context.Background())
}

// TransformContext resets the run state, then initializes, validates and,
// when validation recorded no Error, emits. A TransformationError from any
// step becomes an Error diagnostic and the current buffer is returned with a
// nil error. Other errors are returned unchanged and leave the runner in
// StateFailed.
func (r *Runner) TransformContext(ctx context.Context) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.emitter == nil {
		return "", ErrEmitterRequired
	}

	r.diagnostics.Reset()
	r.buffer.Reset()
	r.failed = false
	r.state = StateIdle

	rc := &Context{ctx: ctx, runner: r}

	text, err := r.run(rc)
	if err != nil {
		if !IsTransformationError(err) {
			r.state = StateFailed
			r.failed = true
			return "", err
		}
		r.diagnostics.Add(diag.Diagnostic{
			Severity: diag.SeverityError,
			Message:  transformationMessage(err),
		})
		r.state = StateFailed
		r.failed = true
		text = r.buffer.String()
	}

	r.state = StateDone
	r.logger.Debug("template transformed",
		zap.String("template", r.name),
		zap.Int("diagnostics", r.diagnostics.Len()),
		zap.Bool("failed", r.failed),
	)
	return text, nil
}

func (r *Runner) run(rc *Context) (string, error) {
	r.state = StateInitializing
	if r.initializer != nil {
		if err := r.initializer.Initialize(rc); err != nil {
			return "", err
		}
	}

	r.state = StateValidating
	if r.validator != nil {
		if err := r.validator.Validate(rc); err != nil {
			return "", err
		}
	}
	if r.diagnostics.HasErrors() {
		r.state = StateFailed
		r.failed = true
		return r.buffer.String(), nil
	}

	r.state = StateGenerating
	return r.emitter.Emit(rc)
}

// Render notifies observers, then, when enabled, transforms and hands the
// text to the router. Persistence overwrites unless the runner was built
// WithIfAbsent.
func (r *Runner) Render(ctx context.Context) error {
	return r.render(ctx, r.ifAbsent)
}

// RenderToFile sets the destination path and calls Render.
func (r *Runner) RenderToFile(ctx context.Context, path string) error {
	r.output.Path = path
	return r.render(ctx, r.ifAbsent)
}

// RenderToFileIfNotExists sets the destination path and renders through the
// router's PersistIfAbsent so existing files are left untouched.
func (r *Runner) RenderToFileIfNotExists(ctx context.Context, path string) error {
	r.output.Path = path
	return r.render(ctx, true)
}

func (r *Runner) render(ctx context.Context, ifAbsent bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	for _, observer := range r.observers {
		observer(r)
	}

	if !r.enabled {
		r.logger.Debug("template disabled, skipping render", zap.String("template", r.name))
		return nil
	}
	if r.router == nil {
		return ErrRouterRequired
	}

	text, err := r.TransformContext(ctx)
	if err != nil {
		return err
	}

	if r.diagnostics.HasErrors() && !r.persistOnError {
		r.logger.Debug("template run failed, skipping persist", zap.String("template", r.name))
		return nil
	}

	desc := r.output.Clone()
	if ifAbsent {
		r.router.PersistIfAbsent(ctx, text, desc, &r.diagnostics)
	} else {
		r.router.Persist(ctx, text, desc, &r.diagnostics)
	}
	return nil
}
