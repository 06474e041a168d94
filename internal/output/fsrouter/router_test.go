package fsrouter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-gentpl/pkg/diag"
	"github.com/goliatone/go-gentpl/pkg/output"
)

func newTestRouter(t *testing.T, options ...output.RouterOption) (*Router, string) {
	t.Helper()
	dir := t.TempDir()
	opts := append([]output.RouterOption{output.WithBaseDir(dir)}, options...)
	return New(output.NewRouterOptions(opts...)), dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestPersist_WritesAndOverwrites(t *testing.T) {
	router, dir := newTestRouter(t)
	var sink diag.Diagnostics
	desc := output.Descriptor{Path: "models/user.go"}

	router.Persist(context.Background(), "v1", desc, &sink)
	router.Persist(context.Background(), "v2", desc, &sink)

	if sink.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", sink.Items())
	}
	if got := readFile(t, filepath.Join(dir, "models", "user.go")); got != "v2" {
		t.Fatalf("expected overwrite, got %q", got)
	}

	leftovers, err := filepath.Glob(filepath.Join(dir, "models", ".*.tmp"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("expected temp files to be cleaned up, got %v", leftovers)
	}
}

func TestPersistIfAbsent_LeavesExistingFile(t *testing.T) {
	router, dir := newTestRouter(t)
	var sink diag.Diagnostics
	desc := output.Descriptor{Path: "main.go"}

	router.PersistIfAbsent(context.Background(), "generated", desc, &sink)
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("hand edited"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	router.PersistIfAbsent(context.Background(), "regenerated", desc, &sink)

	if sink.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", sink.Items())
	}
	if got := readFile(t, filepath.Join(dir, "main.go")); got != "hand edited" {
		t.Fatalf("expected existing file to survive, got %q", got)
	}
}

func TestExists_ReportsResolvedDestination(t *testing.T) {
	router, _ := newTestRouter(t)
	ctx := context.Background()
	desc := output.Descriptor{Path: "api/routes.go"}

	exists, err := router.Exists(ctx, desc)
	if err != nil || exists {
		t.Fatalf("expected missing destination, got exists=%v err=%v", exists, err)
	}

	var sink diag.Diagnostics
	router.Persist(ctx, "package api", desc, &sink)
	exists, err = router.Exists(ctx, desc)
	if err != nil || !exists {
		t.Fatalf("expected written destination, got exists=%v err=%v", exists, err)
	}

	if _, err := router.Exists(ctx, output.Descriptor{}); err == nil {
		t.Fatalf("expected error for an empty destination")
	}
}

func TestPersist_DirectoryOverridesBaseDir(t *testing.T) {
	router, _ := newTestRouter(t)
	other := t.TempDir()
	var sink diag.Diagnostics

	router.Persist(context.Background(), "x", output.Descriptor{Path: "a.txt", Directory: other}, &sink)

	if got := readFile(t, filepath.Join(other, "a.txt")); got != "x" {
		t.Fatalf("expected write into descriptor directory, got %q", got)
	}
}

func TestPersist_ReportsMissingPath(t *testing.T) {
	router, _ := newTestRouter(t)
	var sink diag.Diagnostics

	router.Persist(context.Background(), "x", output.Descriptor{}, &sink)

	errs := sink.Errors()
	if len(errs) != 1 || errs[0].Message != "output: destination path is required" {
		t.Fatalf("unexpected diagnostics: %+v", sink.Items())
	}
}

func TestPersist_ReportsCancelledContext(t *testing.T) {
	router, dir := newTestRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var sink diag.Diagnostics

	router.Persist(ctx, "x", output.Descriptor{Path: "a.txt"}, &sink)

	if !sink.HasErrors() {
		t.Fatalf("expected cancellation to be reported")
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected no file, stat err=%v", err)
	}
}

func TestPersist_DryRunDoesNotWrite(t *testing.T) {
	router, dir := newTestRouter(t, output.WithDryRun(true))
	var sink diag.Diagnostics

	router.Persist(context.Background(), "x", output.Descriptor{Path: "a.txt"}, &sink)

	if sink.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", sink.Items())
	}
	if _, err := os.Stat(filepath.Join(dir, "a.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected dry run to skip the write, stat err=%v", err)
	}
}

func TestPersist_Encodings(t *testing.T) {
	cases := []struct {
		name     string
		encoding string
		text     string
		want     []byte
	}{
		{name: "utf-8 default", encoding: "", text: "hé", want: []byte("hé")},
		{name: "utf-8 bom", encoding: "utf-8-bom", text: "a", want: []byte{0xEF, 0xBB, 0xBF, 'a'}},
		{name: "utf-16le", encoding: "utf-16le", text: "hi", want: []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}},
		{name: "utf-16be", encoding: "utf-16be", text: "hi", want: []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}},
		{name: "latin1", encoding: "latin1", text: "é", want: []byte{0xE9}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, dir := newTestRouter(t)
			var sink diag.Diagnostics

			router.Persist(context.Background(), tc.text, output.Descriptor{Path: "out.txt", Encoding: tc.encoding}, &sink)

			if sink.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %+v", sink.Items())
			}
			got, err := os.ReadFile(filepath.Join(dir, "out.txt"))
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("encoded bytes mismatch\nwant: % x\n got: % x", tc.want, got)
			}
		})
	}
}

func TestPersist_UnrepresentableTextIsReported(t *testing.T) {
	router, dir := newTestRouter(t)
	var sink diag.Diagnostics

	router.Persist(context.Background(), "日本", output.Descriptor{Path: "out.txt", Encoding: "latin1"}, &sink)

	if !sink.HasErrors() {
		t.Fatalf("expected encoding error diagnostic")
	}
	if _, err := os.Stat(filepath.Join(dir, "out.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected no file after encoding failure, stat err=%v", err)
	}
}

func TestPersist_UnknownEncodingIsReported(t *testing.T) {
	router, _ := newTestRouter(t)
	var sink diag.Diagnostics

	router.Persist(context.Background(), "x", output.Descriptor{Path: "out.txt", Encoding: "ebcdic"}, &sink)

	errs := sink.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0].Message, `unsupported encoding "ebcdic"`) {
		t.Fatalf("unexpected diagnostics: %+v", sink.Items())
	}
}

func TestPersist_DefaultEncodingApplies(t *testing.T) {
	router, dir := newTestRouter(t, output.WithDefaultEncoding("utf-8-bom"))
	var sink diag.Diagnostics

	router.Persist(context.Background(), "a", output.Descriptor{Path: "out.txt"}, &sink)

	got, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(got, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("expected BOM from default encoding, got % x", got)
	}
}

func TestPersist_LineEndingsAndSanitize(t *testing.T) {
	router, dir := newTestRouter(t)
	var sink diag.Diagnostics

	router.Persist(context.Background(), "a\nb\r\nc", output.Descriptor{Path: "crlf.txt", LineEnding: "crlf"}, &sink)
	router.Persist(context.Background(), "a\r\nb", output.Descriptor{Path: "lf.txt", LineEnding: "lf"}, &sink)
	router.Persist(context.Background(), `<p class="lead">hi</p><script>alert(1)</script>`, output.Descriptor{Path: "page.html", Sanitize: "html"}, &sink)
	router.Persist(context.Background(), `<b>bold</b>`, output.Descriptor{Path: "plain.txt", Sanitize: "strict"}, &sink)

	if sink.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", sink.Items())
	}
	if got := readFile(t, filepath.Join(dir, "crlf.txt")); got != "a\r\nb\r\nc" {
		t.Fatalf("crlf mismatch: %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "lf.txt")); got != "a\nb" {
		t.Fatalf("lf mismatch: %q", got)
	}
	html := readFile(t, filepath.Join(dir, "page.html"))
	if strings.Contains(html, "<script") || !strings.Contains(html, `<p class="lead">hi</p>`) {
		t.Fatalf("unexpected sanitised html: %q", html)
	}
	if got := readFile(t, filepath.Join(dir, "plain.txt")); got != "bold" {
		t.Fatalf("strict policy mismatch: %q", got)
	}
}

func TestPersist_AppliesFileMode(t *testing.T) {
	router, dir := newTestRouter(t)
	var sink diag.Diagnostics

	router.Persist(context.Background(), "#!/bin/sh\n", output.Descriptor{Path: "run.sh", Mode: 0o755}, &sink)

	info, err := os.Stat(filepath.Join(dir, "run.sh"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("expected mode 0755, got %v", info.Mode().Perm())
	}
}
