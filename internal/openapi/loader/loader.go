package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	pkgopenapi "github.com/goliatone/go-gentpl/pkg/openapi"
)

// Loader implements pkgopenapi.Loader over disk, an fs.FS and HTTP.
type Loader struct {
	baseDir string
	fsys    fs.FS
	client  *http.Client

	mu    sync.Mutex
	cache map[pkgopenapi.Source]pkgopenapi.Document
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options.
func New(options pkgopenapi.LoaderOptions) *Loader {
	l := &Loader{
		baseDir: options.BaseDir,
		fsys:    options.FileSystem,
		client:  options.HTTPClient,
	}
	if options.Cache {
		l.cache = make(map[pkgopenapi.Source]pkgopenapi.Document)
	}
	return l
}

// Load resolves src against the base directory and reads it, serving
// repeated sources from the cache when caching is on.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if src.IsZero() {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is empty")
	}
	src = src.Resolve(l.baseDir)

	if doc, ok := l.cached(src); ok {
		return doc, nil
	}

	data, err := l.read(ctx, src)
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	doc, err := pkgopenapi.NewDocument(src, data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %w", err)
	}

	l.remember(src, doc)
	return doc, nil
}

func (l *Loader) read(ctx context.Context, src pkgopenapi.Source) ([]byte, error) {
	switch src.Kind {
	case pkgopenapi.SourceKindFile:
		return loadFile(ctx, src.Location)
	case pkgopenapi.SourceKindFS:
		return loadFromFS(ctx, l.fsys, src.Location)
	case pkgopenapi.SourceKindURL:
		if l.client == nil {
			return nil, errors.New("openapi loader: http support disabled")
		}
		return loadHTTP(ctx, l.client, src.Location)
	default:
		return nil, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind)
	}
}

func (l *Loader) cached(src pkgopenapi.Source) (pkgopenapi.Document, bool) {
	if l.cache == nil {
		return pkgopenapi.Document{}, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	doc, ok := l.cache[src]
	return doc, ok
}

func (l *Loader) remember(src pkgopenapi.Source, doc pkgopenapi.Document) {
	if l.cache == nil {
		return
	}
	l.mu.Lock()
	l.cache[src] = doc
	l.mu.Unlock()
}
