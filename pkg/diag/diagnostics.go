package diag

import (
	"errors"
	"fmt"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a single error or warning recorded during a template run.
type Diagnostic struct {
	Severity Severity
	Message  string
	// Source names the template run that reported the diagnostic, when known.
	Source string
}

func (d Diagnostic) String() string {
	if d.Source == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Source, d.Severity, d.Message)
}

// Reporter is the reporting surface handed to hooks and emitters.
type Reporter interface {
	Errorf(format string, args ...any)
	Warningf(format string, args ...any)
}

// Diagnostics is an insertion-ordered sink. The zero value is ready to use.
// It is not safe for concurrent use.
type Diagnostics struct {
	source string
	items  []Diagnostic
}

var _ Reporter = (*Diagnostics)(nil)

// WithSource returns a sink that stamps every new diagnostic with source.
func WithSource(source string) *Diagnostics {
	return &Diagnostics{source: source}
}

// SetSource changes the source stamped on diagnostics added afterwards.
func (d *Diagnostics) SetSource(source string) {
	d.source = source
}

// Errorf appends an Error diagnostic.
func (d *Diagnostics) Errorf(format string, args ...any) {
	d.Add(Diagnostic{Severity: SeverityError, Message: sprintf(format, args)})
}

// Warningf appends a Warning diagnostic.
func (d *Diagnostics) Warningf(format string, args ...any) {
	d.Add(Diagnostic{Severity: SeverityWarning, Message: sprintf(format, args)})
}

// Add appends diag, filling Source when empty.
func (d *Diagnostics) Add(diag Diagnostic) {
	if diag.Source == "" {
		diag.Source = d.source
	}
	d.items = append(d.items, diag)
}

// Reset drops every recorded diagnostic.
func (d *Diagnostics) Reset() {
	d.items = d.items[:0]
}

// Len reports the number of recorded diagnostics.
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items)
}

// Items returns a copy of the recorded diagnostics in insertion order.
func (d *Diagnostics) Items() []Diagnostic {
	if d == nil || len(d.items) == 0 {
		return nil
	}
	return append([]Diagnostic(nil), d.items...)
}

// Errors returns the Error diagnostics in insertion order.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(SeverityError)
}

// Warnings returns the Warning diagnostics in insertion order.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(SeverityWarning)
}

// HasErrors reports whether any Error diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	if d == nil {
		return false
	}
	for _, item := range d.items {
		if item.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err joins the Error diagnostics into a single error, or returns nil.
func (d *Diagnostics) Err() error {
	errs := d.Errors()
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, 0, len(errs))
	for _, item := range errs {
		joined = append(joined, errors.New(item.String()))
	}
	return errors.Join(joined...)
}

func (d *Diagnostics) filter(severity Severity) []Diagnostic {
	if d == nil {
		return nil
	}
	var out []Diagnostic
	for _, item := range d.items {
		if item.Severity == severity {
			out = append(out, item)
		}
	}
	return out
}

// sprintf keeps messages without arguments verbatim so literal '%' survives.
// fmt never consults the host locale, so output is stable across machines.
func sprintf(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
