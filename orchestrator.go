package gentpl

import (
	"context"

	"github.com/goliatone/go-gentpl/internal/output/fsrouter"
	"github.com/goliatone/go-gentpl/pkg/manifest"
	"github.com/goliatone/go-gentpl/pkg/orchestrator"
	"github.com/goliatone/go-gentpl/pkg/output"
	"github.com/goliatone/go-gentpl/pkg/runner"
)

// Report aliases orchestrator.Report for callers of RunManifest.
type Report = orchestrator.Report

// NewRouter constructs the filesystem output router.
func NewRouter(options ...output.RouterOption) output.Router {
	return fsrouter.New(output.NewRouterOptions(options...))
}

// NewRunner wraps runner.New for callers that only import the root package.
// Without runner.WithRouter the runner writes through NewRouter().
func NewRunner(emitter runner.Emitter, options ...runner.Option) *runner.Runner {
	opts := append([]runner.Option{runner.WithRouter(NewRouter())}, options...)
	return runner.New(emitter, opts...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RunManifest loads the manifest at path and renders every enabled entry.
func RunManifest(ctx context.Context, path string, options ...orchestrator.Option) (Report, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return Report{}, err
	}
	return orchestrator.New(options...).Run(ctx, m)
}
