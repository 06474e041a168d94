package openapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	gentpl "github.com/goliatone/go-gentpl"
	pkgopenapi "github.com/goliatone/go-gentpl/pkg/openapi"
)

func TestLoaderParserIntegration(t *testing.T) {
	ctx := context.Background()

	fixture := filepath.Join("testdata", "petstore.yaml")
	data, err := os.ReadFile(fixture)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	parser := gentpl.NewParser()
	summarize := func(t *testing.T, doc pkgopenapi.Document) []string {
		t.Helper()
		summary, err := parser.Summarize(ctx, doc)
		if err != nil {
			t.Fatalf("summarize: %v", err)
		}
		ids := make([]string, 0, len(summary.Operations))
		for _, op := range summary.Operations {
			ids = append(ids, op.ID)
		}
		return ids
	}
	want := []string{"listOwners", "listPets", "createPet", "get:/pets/{petId}", "deletePet"}

	t.Run("file", func(t *testing.T) {
		doc, err := gentpl.NewLoader().Load(ctx, pkgopenapi.FileSource(fixture))
		if err != nil {
			t.Fatalf("load file: %v", err)
		}
		if diff := cmp.Diff(want, summarize(t, doc)); diff != "" {
			t.Fatalf("operations mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fs", func(t *testing.T) {
		files := fstest.MapFS{"specs/petstore.yaml": {Data: data}}
		loader := gentpl.NewLoader(pkgopenapi.WithFileSystem(files))
		doc, err := loader.Load(ctx, pkgopenapi.FSSource("specs/petstore.yaml"))
		if err != nil {
			t.Fatalf("load fs: %v", err)
		}
		if diff := cmp.Diff(want, summarize(t, doc)); diff != "" {
			t.Fatalf("operations mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("http", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(data)
		}))
		defer server.Close()

		loader := gentpl.NewLoader(pkgopenapi.WithHTTPClient(server.Client()))
		doc, err := loader.Load(ctx, mustParseSource(t, server.URL))
		if err != nil {
			t.Fatalf("load http: %v", err)
		}
		if diff := cmp.Diff(want, summarize(t, doc)); diff != "" {
			t.Fatalf("operations mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestLoader_HTTPDisabledByDefault(t *testing.T) {
	_, err := gentpl.NewLoader().Load(context.Background(), mustParseSource(t, "http://127.0.0.1:1/spec.yaml"))
	if err == nil || err.Error() != "openapi loader: http support disabled" {
		t.Fatalf("expected http disabled error, got %v", err)
	}
}

func TestLoader_HTTPStatusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	loader := gentpl.NewLoader(pkgopenapi.WithRemoteSources())
	_, err := loader.Load(context.Background(), mustParseSource(t, server.URL))
	if err == nil || !strings.Contains(err.Error(), "unexpected status 410") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoader_BaseDirAnchorsRelativeFiles(t *testing.T) {
	loader := gentpl.NewLoader(pkgopenapi.WithBaseDir("testdata"))

	doc, err := loader.Load(context.Background(), pkgopenapi.FileSource("petstore.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if want := pkgopenapi.FileSource(filepath.Join("testdata", "petstore.yaml")); doc.Source() != want {
		t.Fatalf("expected resolved source %v, got %v", want, doc.Source())
	}
	if doc.Format() != pkgopenapi.FormatYAML {
		t.Fatalf("expected yaml document, got %s", doc.Format())
	}
}

func TestLoader_DocumentCacheFetchesOnce(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "petstore.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write(data)
	}))
	defer server.Close()

	src := mustParseSource(t, server.URL+"/openapi.yaml")
	load := func(loader pkgopenapi.Loader, times int) {
		t.Helper()
		for i := 0; i < times; i++ {
			if _, err := loader.Load(context.Background(), src); err != nil {
				t.Fatalf("load: %v", err)
			}
		}
	}

	load(gentpl.NewLoader(pkgopenapi.WithHTTPClient(server.Client()), pkgopenapi.WithDocumentCache(true)), 3)
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected one fetch with caching, got %d", got)
	}

	load(gentpl.NewLoader(pkgopenapi.WithHTTPClient(server.Client())), 2)
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected a fetch per load without caching, got %d", got)
	}
}

func TestLoader_RejectsEmptySources(t *testing.T) {
	_, err := gentpl.NewLoader().Load(context.Background(), pkgopenapi.Source{})
	if err == nil || err.Error() != "openapi loader: source is empty" {
		t.Fatalf("expected empty source error, got %v", err)
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte("  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err = gentpl.NewLoader().Load(context.Background(), pkgopenapi.FileSource(empty))
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty document error, got %v", err)
	}
}

func mustParseSource(t *testing.T, raw string) pkgopenapi.Source {
	t.Helper()
	src, err := pkgopenapi.ParseSource(raw)
	if err != nil {
		t.Fatalf("parse source %q: %v", raw, err)
	}
	return src
}

func TestContextLoader_ExposesSummaryUnderKey(t *testing.T) {
	src, err := pkgopenapi.ParseSource(filepath.Join("testdata", "petstore.yaml"))
	if err != nil {
		t.Fatalf("parse source: %v", err)
	}
	loader := pkgopenapi.ContextLoader{
		Loader: gentpl.NewLoader(),
		Parser: gentpl.NewParser(),
		Source: src,
		Key:    "api",
	}

	data, err := loader.LoadContext(context.Background())
	if err != nil {
		t.Fatalf("load context: %v", err)
	}
	summary, ok := data["api"].(pkgopenapi.Summary)
	if !ok {
		t.Fatalf("expected summary under api key, got %#v", data)
	}
	if summary.Title != "Petstore" || len(summary.Operations) != 5 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
