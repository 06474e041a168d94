package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-gentpl/internal/openapi/loader"
	internalParser "github.com/goliatone/go-gentpl/internal/openapi/parser"
	"github.com/goliatone/go-gentpl/internal/output/fsrouter"
	"github.com/goliatone/go-gentpl/pkg/manifest"
	pkgopenapi "github.com/goliatone/go-gentpl/pkg/openapi"
	"github.com/goliatone/go-gentpl/pkg/output"
	"github.com/goliatone/go-gentpl/pkg/render"
	"github.com/goliatone/go-gentpl/pkg/render/builtin"
	"github.com/goliatone/go-gentpl/pkg/render/template"
	"github.com/goliatone/go-gentpl/pkg/render/template/gotemplate"
	"github.com/goliatone/go-gentpl/pkg/runner"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRouter injects the output router shared by every run.
func WithRouter(router output.Router) Option {
	return func(o *Orchestrator) {
		o.router = router
	}
}

// WithRenderer injects the template engine. Manifest globals are merged into
// it on every Build. When omitted a pongo2 engine is created per manifest,
// reading the manifest's template directory and the built-in templates.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithRegistry injects the registry that resolves generator entries.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithLogger injects a zap logger shared with the runners it builds.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSelector lets callers choose which runs are enabled before Run.
func WithSelector(selector Selector) Option {
	return func(o *Orchestrator) {
		o.selector = selector
	}
}

// WithBaseDir anchors relative OpenAPI paths when the default loader is used.
// Manifests read with manifest.Load are already anchored at their own
// directory; this matters for manifests built in memory or read from an fs.FS.
func WithBaseDir(dir string) Option {
	return func(o *Orchestrator) {
		o.baseDir = strings.TrimSpace(dir)
	}
}

// WithOutputDir overrides the manifest's output directory.
func WithOutputDir(dir string) Option {
	return func(o *Orchestrator) {
		o.outputDir = strings.TrimSpace(dir)
	}
}

// Orchestrator builds and drives one runner per manifest entry. Missing
// collaborators fall back to the built-in implementations.
type Orchestrator struct {
	router    output.Router
	renderer  template.TemplateRenderer
	registry  *render.Registry
	loader    pkgopenapi.Loader
	parser    pkgopenapi.Parser
	logger    *zap.Logger
	selector  Selector
	outputDir string
	baseDir   string
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if o.router == nil {
		o.router = fsrouter.New(output.NewRouterOptions(output.WithLogger(o.logger)))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
	}
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions(
			pkgopenapi.WithBaseDir(o.baseDir),
			pkgopenapi.WithDocumentCache(true),
		))
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	return o
}

// plan pairs a runner with the entry it was built from.
type plan struct {
	entry   manifest.Entry
	mode    manifest.Mode
	runner  *runner.Runner
	prepare runner.RenderingFunc
	kept    *bool
}

// Build validates the manifest and returns one runner per entry, in manifest
// order. Each runner fills in its output descriptor from the manifest when it
// starts rendering, so callers may still adjust descriptors or enable gates
// after Build returns. Runners of if-absent entries keep existing
// destinations on a plain Render.
func (o *Orchestrator) Build(ctx context.Context, m *manifest.Manifest) ([]*runner.Runner, error) {
	plans, err := o.plan(ctx, m)
	if err != nil {
		return nil, err
	}
	runners := make([]*runner.Runner, 0, len(plans))
	for _, p := range plans {
		runners = append(runners, p.runner)
	}
	return runners, nil
}

// Run builds the manifest's runners, lets the Selector pick the enabled set,
// and renders each run with its entry's overwrite or if-absent mode. Expected
// failures end up in the Report; anything else aborts the run and is
// returned alongside the partial report.
func (o *Orchestrator) Run(ctx context.Context, m *manifest.Manifest) (Report, error) {
	plans, err := o.plan(ctx, m)
	if err != nil {
		return Report{}, err
	}
	if err := o.applySelection(ctx, plans); err != nil {
		return Report{}, err
	}

	report := Report{Runs: make([]RunResult, 0, len(plans))}
	for _, p := range plans {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		r := p.runner
		if err := r.Render(ctx); err != nil {
			return report, fmt.Errorf("orchestrator: render %q: %w", r.Name(), err)
		}

		result := o.result(p)
		if result.Enabled {
			o.logger.Info("template rendered",
				zap.String("template", result.Name),
				zap.String("path", result.Path),
				zap.String("mode", string(result.Mode)),
				zap.Bool("kept", result.Kept),
				zap.Bool("failed", result.HasErrors()),
			)
		}
		report.Runs = append(report.Runs, result)
	}
	return report, nil
}

// Check transforms every enabled run without persisting anything. It is the
// dry validation behind `gentpl lint`.
func (o *Orchestrator) Check(ctx context.Context, m *manifest.Manifest) (Report, error) {
	plans, err := o.plan(ctx, m)
	if err != nil {
		return Report{}, err
	}

	report := Report{Runs: make([]RunResult, 0, len(plans))}
	for _, p := range plans {
		p.prepare(p.runner)
		if p.runner.Enabled() {
			if _, err := p.runner.TransformContext(ctx); err != nil {
				return report, fmt.Errorf("orchestrator: check %q: %w", p.runner.Name(), err)
			}
		}
		report.Runs = append(report.Runs, o.result(p))
	}
	return report, nil
}

func (o *Orchestrator) plan(ctx context.Context, m *manifest.Manifest) ([]plan, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	outputDir := o.outputDir
	if outputDir == "" {
		outputDir = m.OutputDir
	}

	var engine template.TemplateRenderer
	plans := make([]plan, 0, len(m.Templates))
	for _, entry := range m.Templates {
		var emitter runner.Emitter
		if name := strings.TrimSpace(entry.Generator); name != "" {
			gen, err := o.registry.Get(name)
			if err != nil {
				return nil, fmt.Errorf("orchestrator: template %q: %w", entry.Name, err)
			}
			emitter = gen
		} else {
			if engine == nil {
				var err error
				if engine, err = o.engineFor(m); err != nil {
					return nil, err
				}
			}
			tpl, err := o.templateFor(entry, m.Defaults, engine)
			if err != nil {
				return nil, err
			}
			emitter = tpl
		}

		mode := entry.EffectiveMode(m.Defaults)
		prepare := prepareOutput(entry, m.Defaults, outputDir)
		kept := new(bool)
		r := runner.New(emitter,
			runner.WithName(entry.Name),
			runner.WithRouter(o.router),
			runner.WithLogger(o.logger),
			runner.WithEnabled(entry.IsEnabled()),
			runner.WithIfAbsent(mode == manifest.ModeIfAbsent),
			runner.WithOutput(output.Descriptor{
				Path:     entry.Output,
				Metadata: map[string]string{"template": entry.Name},
			}),
			runner.WithRenderingObserver(prepare),
			runner.WithRenderingObserver(o.inspectDestination(ctx, kept)),
		)
		plans = append(plans, plan{
			entry:   entry,
			mode:    mode,
			runner:  r,
			prepare: prepare,
			kept:    kept,
		})
	}
	return plans, nil
}

// prepareOutput fills the descriptor from the manifest just in time, leaving
// anything already set on it alone.
func prepareOutput(entry manifest.Entry, defaults manifest.Defaults, outputDir string) runner.RenderingFunc {
	return func(r *runner.Runner) {
		desc := r.Output()
		entry.Apply(desc, defaults)
		if strings.TrimSpace(desc.Directory) == "" {
			desc.Directory = outputDir
		}
	}
}

// inspectDestination records whether an enabled if-absent run is about to
// find its destination already in place. Routers that cannot inspect
// destinations never report kept runs.
func (o *Orchestrator) inspectDestination(ctx context.Context, kept *bool) runner.RenderingFunc {
	inspector, ok := o.router.(output.Inspector)
	return func(r *runner.Runner) {
		*kept = false
		if !ok || !r.Enabled() || !r.IfAbsent() {
			return
		}
		exists, err := inspector.Exists(ctx, r.Output().Clone())
		if err != nil {
			o.logger.Debug("destination inspection failed",
				zap.String("template", r.Name()),
				zap.Error(err),
			)
			return
		}
		*kept = exists
	}
}

func (o *Orchestrator) engineFor(m *manifest.Manifest) (template.TemplateRenderer, error) {
	if o.renderer != nil {
		if err := o.renderer.GlobalContext(m.Globals); err != nil {
			return nil, fmt.Errorf("orchestrator: apply globals: %w", err)
		}
		return o.renderer, nil
	}

	options := []gotemplate.Option{
		gotemplate.WithFS(builtin.Templates()),
		gotemplate.WithGlobalData(m.Globals),
	}
	if dir := strings.TrimSpace(m.TemplateDir); dir != "" {
		options = append(options, gotemplate.WithBaseDir(dir))
	}
	engine, err := gotemplate.New(options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: template engine: %w", err)
	}
	return engine, nil
}

func (o *Orchestrator) templateFor(entry manifest.Entry, defaults manifest.Defaults, engine template.TemplateRenderer) (*render.Template, error) {
	tpl := &render.Template{
		Renderer: engine,
		Name:     entry.Template,
		Source:   entry.Inline,
		Params:   entry.MergedParams(defaults),
		Required: append([]string(nil), entry.Required...),
	}
	if spec := strings.TrimSpace(entry.OpenAPI); spec != "" {
		src, err := pkgopenapi.ParseSource(spec)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: template %q: %w", entry.Name, err)
		}
		tpl.Loaders = append(tpl.Loaders, pkgopenapi.ContextLoader{
			Loader: o.loader,
			Parser: o.parser,
			Source: src,
		})
	}
	return tpl, nil
}

func (o *Orchestrator) applySelection(ctx context.Context, plans []plan) error {
	if o.selector == nil || len(plans) == 0 {
		return nil
	}

	inspector, _ := o.router.(output.Inspector)
	candidates := make([]Candidate, 0, len(plans))
	for _, p := range plans {
		p.prepare(p.runner)
		desc := p.runner.Output().Clone()
		c := Candidate{
			Name:    p.runner.Name(),
			Output:  p.entry.Output,
			Enabled: p.runner.Enabled(),
			Path:    desc.Resolve(),
			Mode:    p.mode,
		}
		if inspector != nil {
			exists, err := inspector.Exists(ctx, desc)
			if err != nil {
				return fmt.Errorf("orchestrator: inspect %q: %w", c.Name, err)
			}
			c.Exists = exists
		}
		candidates = append(candidates, c)
	}

	selected, err := o.selector.Select(ctx, candidates)
	if err != nil {
		return fmt.Errorf("orchestrator: select templates: %w", err)
	}
	chosen := make(map[string]bool, len(selected))
	for _, name := range selected {
		chosen[strings.TrimSpace(name)] = true
	}
	for _, p := range plans {
		p.runner.SetEnabled(chosen[p.runner.Name()])
	}
	return nil
}

func (o *Orchestrator) result(p plan) RunResult {
	return RunResult{
		Name:        p.runner.Name(),
		Path:        p.runner.Output().Resolve(),
		Mode:        p.mode,
		Enabled:     p.runner.Enabled(),
		Diagnostics: p.runner.Diagnostics(),
		Kept:        *p.kept,
	}
}
