package openapi

import "context"

// Parser condenses an OpenAPI document into the Summary templates consume.
type Parser interface {
	Summarize(ctx context.Context, doc Document) (Summary, error)
}

// ParserOptions toggles how strictly documents are checked.
type ParserOptions struct {
	// ResolveReferences validates the document and resolves external $ref
	// pointers. Defaults to true.
	ResolveReferences bool

	// AllowPartialDocuments accepts documents without paths (component-only
	// libraries). Defaults to false.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles eager reference resolution.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles support for component-only documents.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ResolveReferences:     true,
		AllowPartialDocuments: false,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level gentpl package to avoid import cycles.
