package orchestrator

import (
	"github.com/goliatone/go-gentpl/pkg/diag"
	"github.com/goliatone/go-gentpl/pkg/manifest"
)

// RunResult records the outcome of one manifest entry.
type RunResult struct {
	Name        string
	Path        string
	Mode        manifest.Mode
	Enabled     bool
	Diagnostics []diag.Diagnostic

	// Kept is set for if-absent runs whose destination already existed and
	// was left untouched.
	Kept bool
}

// HasErrors reports whether the run recorded an Error diagnostic.
func (r RunResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

// Report collects run results in manifest order.
type Report struct {
	Runs []RunResult
}

// HasErrors reports whether any run recorded an Error diagnostic.
func (r Report) HasErrors() bool {
	for _, run := range r.Runs {
		if run.HasErrors() {
			return true
		}
	}
	return false
}

// Diagnostics flattens every run's diagnostics in order.
func (r Report) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, run := range r.Runs {
		out = append(out, run.Diagnostics...)
	}
	return out
}

// Run returns the result for name.
func (r Report) Run(name string) (RunResult, bool) {
	for _, run := range r.Runs {
		if run.Name == name {
			return run, true
		}
	}
	return RunResult{}, false
}
