package openapi

import (
	"context"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

// Loader reads the document a Source names.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// DefaultRemoteTimeout bounds fetches made by WithRemoteSources.
const DefaultRemoteTimeout = 30 * time.Second

// LoaderOptions configures the built-in loader. Remote sources stay disabled
// until an HTTP client is configured.
type LoaderOptions struct {
	// BaseDir anchors relative file sources, usually the manifest directory.
	BaseDir string

	// FileSystem serves SourceKindFS sources.
	FileSystem fs.FS

	// HTTPClient fetches SourceKindURL sources. Nil disables them.
	HTTPClient *http.Client

	// Cache keeps each document after its first load, so manifest entries
	// sharing one document read it once per loader.
	Cache bool
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithBaseDir anchors relative file sources at dir.
func WithBaseDir(dir string) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.BaseDir = strings.TrimSpace(dir)
	}
}

// WithFileSystem serves fs sources from files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithRemoteSources enables URL sources with a client bounded by
// DefaultRemoteTimeout, unless a client was already injected.
func WithRemoteSources() LoaderOption {
	return func(opts *LoaderOptions) {
		if opts.HTTPClient == nil {
			opts.HTTPClient = &http.Client{Timeout: DefaultRemoteTimeout}
		}
	}
}

// WithDocumentCache toggles per-loader document caching.
func WithDocumentCache(enabled bool) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Cache = enabled
	}
}

// NewLoaderOptions applies options over the zero configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
