package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-gentpl/pkg/render"
	"github.com/goliatone/go-gentpl/pkg/runner"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := render.NewRegistry()
	emitter := runner.EmitFunc(func(*runner.Context) (string, error) { return "ok", nil })

	reg.MustRegister("version", emitter)
	reg.MustRegister("changelog", emitter)

	if err := reg.Register("version", emitter); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(" ", emitter); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := reg.Register("nil", nil); err == nil {
		t.Fatalf("expected nil emitter to fail")
	}

	if diff := cmp.Diff([]string{"changelog", "version"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("version") || reg.Has("missing") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("expected missing lookup to fail")
	}
	got, err := reg.Get("version")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if text, _ := got.Emit(nil); text != "ok" {
		t.Fatalf("unexpected emitter output %q", text)
	}
}
