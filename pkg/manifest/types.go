package manifest

import (
	"strings"

	"github.com/goliatone/go-gentpl/pkg/output"
)

// Mode selects how an entry's output is persisted.
type Mode string

const (
	// ModeOverwrite replaces existing files.
	ModeOverwrite Mode = "overwrite"
	// ModeIfAbsent leaves existing files untouched.
	ModeIfAbsent Mode = "if-absent"
)

// Valid reports whether m is empty or a known mode.
func (m Mode) Valid() bool {
	switch m {
	case "", ModeOverwrite, ModeIfAbsent:
		return true
	default:
		return false
	}
}

// Manifest is a parsed manifest file.
type Manifest struct {
	OutputDir   string         `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	TemplateDir string         `json:"template_dir" yaml:"template_dir" toml:"template_dir"`
	Defaults    Defaults       `json:"defaults" yaml:"defaults" toml:"defaults"`
	Globals     map[string]any `json:"globals" yaml:"globals" toml:"globals"`
	Templates   []Entry        `json:"templates" yaml:"templates" toml:"templates"`

	// Source is the file the manifest was read from, if any.
	Source string `json:"-" yaml:"-" toml:"-"`
}

// Defaults apply to every entry that leaves the matching field empty.
type Defaults struct {
	Mode       Mode           `json:"mode" yaml:"mode" toml:"mode"`
	Encoding   string         `json:"encoding" yaml:"encoding" toml:"encoding"`
	LineEnding string         `json:"line_ending" yaml:"line_ending" toml:"line_ending"`
	Sanitize   string         `json:"sanitize" yaml:"sanitize" toml:"sanitize"`
	Params     map[string]any `json:"params" yaml:"params" toml:"params"`
}

// Entry configures a single template run. Exactly one of Template, Inline and
// Generator selects what is emitted.
type Entry struct {
	Name string `json:"name" yaml:"name" toml:"name"`

	// Template names a file under the manifest's template directory.
	Template string `json:"template" yaml:"template" toml:"template"`
	// Inline is template source embedded in the manifest.
	Inline string `json:"inline" yaml:"inline" toml:"inline"`
	// Generator names an emitter registered in code.
	Generator string `json:"generator" yaml:"generator" toml:"generator"`

	Output     string         `json:"output" yaml:"output" toml:"output"`
	Enabled    *bool          `json:"enabled" yaml:"enabled" toml:"enabled"`
	Mode       Mode           `json:"mode" yaml:"mode" toml:"mode"`
	Params     map[string]any `json:"params" yaml:"params" toml:"params"`
	Required   []string       `json:"required" yaml:"required" toml:"required"`
	OpenAPI    string         `json:"openapi" yaml:"openapi" toml:"openapi"`
	Encoding   string         `json:"encoding" yaml:"encoding" toml:"encoding"`
	LineEnding string         `json:"line_ending" yaml:"line_ending" toml:"line_ending"`
	Sanitize   string         `json:"sanitize" yaml:"sanitize" toml:"sanitize"`
	Executable bool           `json:"executable" yaml:"executable" toml:"executable"`
}

// IsEnabled reports whether the entry should run. Entries are enabled unless
// they say otherwise.
func (e Entry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// EffectiveMode returns the entry's mode, falling back to the defaults and
// finally to ModeOverwrite.
func (e Entry) EffectiveMode(d Defaults) Mode {
	switch {
	case e.Mode != "":
		return e.Mode
	case d.Mode != "":
		return d.Mode
	default:
		return ModeOverwrite
	}
}

// Apply copies the entry's persistence settings, with defaults filled in,
// onto desc. Fields already set on desc by code take precedence.
func (e Entry) Apply(desc *output.Descriptor, d Defaults) {
	if desc == nil {
		return
	}
	if strings.TrimSpace(desc.Path) == "" {
		desc.Path = e.Output
	}
	desc.Encoding = firstNonEmpty(desc.Encoding, e.Encoding, d.Encoding)
	desc.LineEnding = firstNonEmpty(desc.LineEnding, e.LineEnding, d.LineEnding)
	desc.Sanitize = firstNonEmpty(desc.Sanitize, e.Sanitize, d.Sanitize)
	if desc.Mode == 0 && e.Executable {
		desc.Mode = 0o755
	}
}

// MergedParams returns the default params overlaid with the entry's own.
func (e Entry) MergedParams(d Defaults) map[string]any {
	out := make(map[string]any, len(d.Params)+len(e.Params))
	for k, v := range d.Params {
		out[k] = v
	}
	for k, v := range e.Params {
		out[k] = v
	}
	return out
}

// Entry returns the entry with the given name.
func (m *Manifest) Entry(name string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	for _, entry := range m.Templates {
		if entry.Name == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// Names lists entry names in declaration order.
func (m *Manifest) Names() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Templates))
	for _, entry := range m.Templates {
		out = append(out, entry.Name)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
