package orchestrator

import (
	"context"

	"github.com/goliatone/go-gentpl/pkg/manifest"
)

// Candidate describes a manifest entry offered to a Selector.
type Candidate struct {
	Name    string
	Output  string
	Enabled bool

	// Path is the resolved destination and Mode the entry's write mode.
	Path string
	Mode manifest.Mode

	// Exists is set when the router reports Path already holds content.
	Exists bool
}

// Selector decides which runs are enabled before Run renders them. It returns
// the names to enable; every other run is disabled.
type Selector interface {
	Select(ctx context.Context, candidates []Candidate) ([]string, error)
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(ctx context.Context, candidates []Candidate) ([]string, error)

func (f SelectorFunc) Select(ctx context.Context, candidates []Candidate) ([]string, error) {
	return f(ctx, candidates)
}

// SelectNames returns a Selector that enables exactly the named runs,
// ignoring names the manifest does not define.
func SelectNames(names ...string) Selector {
	return SelectorFunc(func(_ context.Context, candidates []Candidate) ([]string, error) {
		return append([]string(nil), names...), nil
	})
}
