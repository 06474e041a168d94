package builtin_test

import (
	"io/fs"
	"testing"

	"github.com/goliatone/go-gentpl/pkg/render/builtin"
	"github.com/goliatone/go-gentpl/pkg/render/template/gotemplate"
)

func TestTemplates_AreListedUnderPrefix(t *testing.T) {
	for _, name := range []string{"gentpl/header.tpl", "gentpl/operations.md.tpl"} {
		if _, err := fs.Stat(builtin.Templates(), name); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestHeader_Renders(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(builtin.Templates()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("gentpl/header", map[string]any{"comment": "#", "source": "api.yaml"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "# Code generated by gentpl from api.yaml. DO NOT EDIT.\n"; got != want {
		t.Fatalf("header mismatch\nwant: %q\n got: %q", want, got)
	}

	got, err = engine.RenderTemplate("gentpl/header", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "// Code generated by gentpl. DO NOT EDIT.\n"; got != want {
		t.Fatalf("header mismatch\nwant: %q\n got: %q", want, got)
	}
}
