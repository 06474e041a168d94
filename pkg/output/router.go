package output

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-gentpl/pkg/diag"
)

// Router turns generated text plus a Descriptor into a persisted artifact.
// Implementations report I/O failures into sink instead of returning errors
// and must not leave partially written destinations visible.
type Router interface {
	// Persist writes text to the destination, replacing existing content.
	Persist(ctx context.Context, text string, desc Descriptor, sink *diag.Diagnostics)

	// PersistIfAbsent writes text only when the destination does not exist.
	PersistIfAbsent(ctx context.Context, text string, desc Descriptor, sink *diag.Diagnostics)
}

// Inspector is implemented by routers that can tell whether a destination
// already holds content, which lets callers report if-absent runs that kept
// an existing file.
type Inspector interface {
	Exists(ctx context.Context, desc Descriptor) (bool, error)
}

// RouterOptions configures the filesystem router. Implementations live under
// internal/output but are constructed through the top-level gentpl package.
type RouterOptions struct {
	// BaseDir anchors descriptors that carry neither an absolute Path nor a
	// Directory.
	BaseDir string

	// DryRun reports intended writes without touching the filesystem.
	DryRun bool

	// DefaultEncoding applies when a descriptor leaves Encoding empty.
	DefaultEncoding string

	// Logger receives debug/warn events. Nil means zap.NewNop().
	Logger *zap.Logger
}

// RouterOption mutates RouterOptions prior to construction.
type RouterOption func(*RouterOptions)

// WithBaseDir sets the directory relative destinations resolve against.
func WithBaseDir(dir string) RouterOption {
	return func(opts *RouterOptions) {
		opts.BaseDir = strings.TrimSpace(dir)
	}
}

// WithDryRun toggles dry-run mode.
func WithDryRun(enabled bool) RouterOption {
	return func(opts *RouterOptions) {
		opts.DryRun = enabled
	}
}

// WithDefaultEncoding sets the fallback encoding.
func WithDefaultEncoding(encoding string) RouterOption {
	return func(opts *RouterOptions) {
		opts.DefaultEncoding = strings.TrimSpace(encoding)
	}
}

// WithLogger injects a zap logger.
func WithLogger(logger *zap.Logger) RouterOption {
	return func(opts *RouterOptions) {
		opts.Logger = logger
	}
}

// NewRouterOptions applies RouterOption values and returns the resulting
// configuration.
func NewRouterOptions(options ...RouterOption) RouterOptions {
	cfg := RouterOptions{
		DefaultEncoding: EncodingUTF8,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}
