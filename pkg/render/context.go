package render

import (
	"context"
	"strings"
)

// ContextLoader resolves data a template needs before it is validated, such
// as a parsed API description or values read from disk.
type ContextLoader interface {
	LoadContext(ctx context.Context) (map[string]any, error)
}

// ContextLoaderFunc adapts a function to ContextLoader.
type ContextLoaderFunc func(ctx context.Context) (map[string]any, error)

func (f ContextLoaderFunc) LoadContext(ctx context.Context) (map[string]any, error) {
	return f(ctx)
}

// StaticContext is a ContextLoader that always returns a copy of itself.
type StaticContext map[string]any

func (s StaticContext) LoadContext(context.Context) (map[string]any, error) {
	return mergeData(nil, s), nil
}

func mergeData(dst map[string]any, sources ...map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for _, src := range sources {
		for key, value := range src {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			dst[key] = value
		}
	}
	return dst
}
