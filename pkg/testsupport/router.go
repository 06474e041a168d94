package testsupport

import (
	"context"

	"github.com/goliatone/go-gentpl/pkg/diag"
	"github.com/goliatone/go-gentpl/pkg/output"
)

// PersistCall records one router invocation.
type PersistCall struct {
	Op       string // "persist" or "persist-if-absent"
	Path     string
	Text     string
	Written  bool
	Encoding string
}

// RecordingRouter is an in-memory output.Router. Files are keyed by the
// descriptor's resolved path; PersistIfAbsent leaves existing keys alone.
type RecordingRouter struct {
	Files map[string]string
	Calls []PersistCall

	// FailWith, when set, is reported as an Error diagnostic instead of
	// writing.
	FailWith string
}

var (
	_ output.Router    = (*RecordingRouter)(nil)
	_ output.Inspector = (*RecordingRouter)(nil)
)

// NewRecordingRouter returns an empty router.
func NewRecordingRouter() *RecordingRouter {
	return &RecordingRouter{Files: make(map[string]string)}
}

// Persist implements output.Router.
func (r *RecordingRouter) Persist(_ context.Context, text string, desc output.Descriptor, sink *diag.Diagnostics) {
	r.record("persist", text, desc, sink, true)
}

// PersistIfAbsent implements output.Router.
func (r *RecordingRouter) PersistIfAbsent(_ context.Context, text string, desc output.Descriptor, sink *diag.Diagnostics) {
	_, exists := r.Files[desc.Resolve()]
	r.record("persist-if-absent", text, desc, sink, !exists)
}

// Exists implements output.Inspector.
func (r *RecordingRouter) Exists(_ context.Context, desc output.Descriptor) (bool, error) {
	_, ok := r.Files[desc.Resolve()]
	return ok, nil
}

// Writes returns the calls that actually wrote content.
func (r *RecordingRouter) Writes() []PersistCall {
	var out []PersistCall
	for _, call := range r.Calls {
		if call.Written {
			out = append(out, call)
		}
	}
	return out
}

func (r *RecordingRouter) record(op, text string, desc output.Descriptor, sink *diag.Diagnostics, write bool) {
	if r.Files == nil {
		r.Files = make(map[string]string)
	}
	path := desc.Resolve()
	call := PersistCall{Op: op, Path: path, Text: text, Encoding: desc.Encoding}

	switch {
	case r.FailWith != "":
		if sink != nil {
			sink.Errorf("write %s: %s", path, r.FailWith)
		}
	case write:
		r.Files[path] = text
		call.Written = true
	}
	r.Calls = append(r.Calls, call)
}
