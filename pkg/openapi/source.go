package openapi

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// SourceKind says how a Loader reads a Source.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source names an OpenAPI document the way a manifest entry or the --openapi
// flag does. Sources are comparable, so loaders may key caches on them.
type Source struct {
	Kind     SourceKind
	Location string
}

// FileSource points at a document on disk. Relative paths are resolved by the
// loader against its base directory.
func FileSource(path string) Source {
	return Source{Kind: SourceKindFile, Location: filepath.Clean(path)}
}

// FSSource points at a document inside the loader's fs.FS.
func FSSource(name string) Source {
	return Source{Kind: SourceKindFS, Location: strings.TrimPrefix(name, "/")}
}

// ParseSource turns a manifest value into a Source: http(s) URLs become URL
// sources and anything else a file path.
func ParseSource(raw string) (Source, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Source{}, fmt.Errorf("openapi: empty source")
	}
	if !IsRemote(value) {
		return FileSource(value), nil
	}
	if _, err := url.ParseRequestURI(value); err != nil {
		return Source{}, fmt.Errorf("openapi: invalid URL %q: %w", value, err)
	}
	return Source{Kind: SourceKindURL, Location: value}, nil
}

// IsRemote reports whether value is an http(s) URL.
func IsRemote(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}

// IsZero reports whether the source names nothing.
func (s Source) IsZero() bool {
	return s.Location == ""
}

// Resolve anchors a relative file source at baseDir. Other kinds, absolute
// paths and an empty baseDir leave the source unchanged.
func (s Source) Resolve(baseDir string) Source {
	if s.Kind != SourceKindFile || baseDir == "" || filepath.IsAbs(s.Location) {
		return s
	}
	return FileSource(filepath.Join(baseDir, s.Location))
}

func (s Source) String() string {
	if s.Kind == SourceKindFS {
		return "fs:" + s.Location
	}
	return s.Location
}
