package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "gentpl.yaml")
	writeFile(t, manifestPath, `output_dir: out
globals:
  project: billing
templates:
  - name: readme
    inline: "# {{ project }}"
    output: README.md
  - name: notes
    inline: "notes"
    output: NOTES.md
    enabled: false
`)

	stdout, _, err := execute(t, "run", manifestPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "out", "README.md")); got != "# billing" {
		t.Fatalf("unexpected README content %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "NOTES.md")); !os.IsNotExist(err) {
		t.Fatalf("disabled entry should not be written")
	}
	for _, want := range []string{"wrote    readme -> ", "skipped  notes"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestRunCommand_ReportsKeptFiles(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "gentpl.yaml")
	writeFile(t, manifestPath, `output_dir: out
templates:
  - name: handler
    inline: "generated"
    output: handler.go
    mode: if-absent
`)
	handler := filepath.Join(dir, "out", "handler.go")
	writeFile(t, handler, "hand edited")

	stdout, _, err := execute(t, "run", manifestPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout, "kept     handler -> "+handler) {
		t.Fatalf("expected kept report, got:\n%s", stdout)
	}
	if got := readFile(t, handler); got != "hand edited" {
		t.Fatalf("if-absent entry overwrote the file: %q", got)
	}
}

func TestRunCommand_DryRunAndOutputDir(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "gentpl.json")
	writeFile(t, manifestPath, `{"templates": [{"name": "a", "inline": "a", "output": "a.txt"}]}`)
	override := filepath.Join(dir, "override")

	stdout, _, err := execute(t, "run", "--dry-run", "--output-dir", override, manifestPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout, "checked  a -> "+filepath.Join(override, "a.txt")) {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Join(override, "a.txt")); !os.IsNotExist(err) {
		t.Fatalf("dry run must not write files")
	}
}

func TestRunCommand_ReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "gentpl.yaml")
	writeFile(t, manifestPath, `templates:
  - name: api
    inline: "{{ name }}"
    output: api.txt
    required: [name]
`)

	stdout, _, err := execute(t, "run", manifestPath)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected diagnostics error, got %v", err)
	}
	if !strings.Contains(stdout, "failed   api") || !strings.Contains(stdout, "api: error: required parameter name is missing") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}

func TestRenderCommand_Stdout(t *testing.T) {
	stdout, _, err := execute(t, "render", "hello {{ who|upper }} x{{ n + 1 }}", "--param", "who=ada", "-p", "n=2")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stdout != "hello ADA x3" {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestRenderCommand_NamedTemplateToFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "templates", "greet.tpl"), "hi {{ who }}")
	out := filepath.Join(dir, "greet.txt")

	if _, _, err := execute(t, "render", "greet", "--template-dir", filepath.Join(dir, "templates"), "--out", out, "--param", "who=Ada"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := readFile(t, out); got != "hi Ada" {
		t.Fatalf("unexpected content %q", got)
	}

	if _, _, err := execute(t, "render", "greet", "--template-dir", filepath.Join(dir, "templates"), "--out", out, "--param", "who=Bob", "--if-not-exists"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := readFile(t, out); got != "hi Ada" {
		t.Fatalf("--if-not-exists overwrote the file: %q", got)
	}
}

func TestRenderCommand_FailureDoesNotWrite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "broken.txt")

	_, stderr, err := execute(t, "render", "{% if %}", "--out", out)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected diagnostics error, got %v", err)
	}
	if !strings.Contains(stderr, "render: error:") {
		t.Fatalf("expected error diagnostic on stderr, got:\n%s", stderr)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("failed render must not write")
	}
}

func TestLintCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, good, "templates:\n  - name: a\n    inline: a\n    output: a.txt\n")
	writeFile(t, bad, "templates:\n  - name: a\n    output: a.txt\n")

	stdout, _, err := execute(t, "lint", good)
	if err != nil {
		t.Fatalf("lint good: %v\n%s", err, stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt")); !os.IsNotExist(err) {
		t.Fatalf("lint must not write files")
	}

	stdout, _, err = execute(t, "lint", good, bad)
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("expected lint failure, got %v", err)
	}
	if !strings.Contains(stdout, "invalid  "+bad) || !strings.Contains(stdout, "one of template, inline or generator is required") {
		t.Fatalf("unexpected lint output:\n%s", stdout)
	}
}

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"name=billing", "port=8080", "debug=true", "tags=[a, b]", "empty="})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]any{
		"name":  "billing",
		"port":  8080,
		"debug": true,
		"tags":  []any{"a", "b"},
		"empty": "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}

	if _, err := parseParams([]string{"novalue"}); err == nil {
		t.Fatalf("expected error for missing '='")
	}
}
