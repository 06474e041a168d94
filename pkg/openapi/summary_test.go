package openapi_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-gentpl/pkg/openapi"
)

type stubLoader struct{ err error }

func (l stubLoader) Load(_ context.Context, src openapi.Source) (openapi.Document, error) {
	if l.err != nil {
		return openapi.Document{}, l.err
	}
	return openapi.NewDocument(src, []byte("openapi: 3.0.3"))
}

type stubParser struct{ summary openapi.Summary }

func (p stubParser) Summarize(context.Context, openapi.Document) (openapi.Summary, error) {
	return p.summary, nil
}

func TestParseSource(t *testing.T) {
	cases := map[string]openapi.SourceKind{
		"api/openapi.yaml":                  openapi.SourceKindFile,
		"https://example.com/openapi.json":  openapi.SourceKindURL,
		"  http://localhost:8080/spec.yml ": openapi.SourceKindURL,
	}
	for raw, want := range cases {
		src, err := openapi.ParseSource(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if src.Kind != want {
			t.Fatalf("parse %q: want kind %s, got %s", raw, want, src.Kind)
		}
	}
	if _, err := openapi.ParseSource("   "); err == nil {
		t.Fatalf("expected error for empty source")
	}
}

func TestSource_Resolve(t *testing.T) {
	remote, err := openapi.ParseSource("https://example.com/openapi.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cases := []struct {
		name string
		src  openapi.Source
		want openapi.Source
	}{
		{"relative file", openapi.FileSource("api/openapi.yaml"), openapi.FileSource(filepath.Join("project", "api", "openapi.yaml"))},
		{"absolute file", openapi.FileSource("/srv/openapi.yaml"), openapi.FileSource("/srv/openapi.yaml")},
		{"fs entry", openapi.FSSource("api/openapi.yaml"), openapi.FSSource("api/openapi.yaml")},
		{"url", remote, remote},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.src.Resolve("project"); got != tc.want {
				t.Fatalf("want %+v, got %+v", tc.want, got)
			}
		})
	}
	if got := openapi.FileSource("api.yaml").Resolve(""); got != openapi.FileSource("api.yaml") {
		t.Fatalf("empty base dir must leave the source alone, got %+v", got)
	}
}

func TestNewDocument_DetectsFormat(t *testing.T) {
	src := openapi.FSSource("api.json")
	doc, err := openapi.NewDocument(src, []byte("\n  {\"openapi\": \"3.0.3\"}"))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	if doc.Format() != openapi.FormatJSON || doc.Source() != src {
		t.Fatalf("unexpected document: format=%s source=%v", doc.Format(), doc.Source())
	}

	if _, err := openapi.NewDocument(src, []byte(" \t\n")); err == nil || err.Error() != "openapi: document fs:api.json is empty" {
		t.Fatalf("expected empty document error, got %v", err)
	}
}

func TestContextLoader_DefaultKey(t *testing.T) {
	src := openapi.FileSource("api.yaml")
	summary := openapi.Summary{
		Title:      "Orders",
		Operations: []openapi.Operation{{ID: "listOrders", Method: "GET", Path: "/orders"}},
	}
	loader := openapi.ContextLoader{Loader: stubLoader{}, Parser: stubParser{summary: summary}, Source: src}

	data, err := loader.LoadContext(context.Background())
	if err != nil {
		t.Fatalf("load context: %v", err)
	}
	got, ok := data[openapi.DefaultContextKey].(openapi.Summary)
	if !ok || got.Title != "Orders" {
		t.Fatalf("unexpected context: %#v", data)
	}
	if op, ok := got.Operation("listOrders"); !ok || op.Path != "/orders" {
		t.Fatalf("operation lookup failed: %+v", op)
	}
	if _, ok := got.Operation("missing"); ok {
		t.Fatalf("unexpected operation match")
	}
}

func TestContextLoader_Errors(t *testing.T) {
	if _, err := (openapi.ContextLoader{}).LoadContext(context.Background()); err == nil {
		t.Fatalf("expected missing collaborators error")
	}

	boom := errors.New("boom")
	loader := openapi.ContextLoader{
		Loader: stubLoader{err: boom},
		Parser: stubParser{},
		Source: openapi.FileSource("api.yaml"),
	}
	if _, err := loader.LoadContext(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
}
