package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-gentpl/pkg/output"
)

var knownEncodings = map[string]bool{
	output.EncodingUTF8:        true,
	output.EncodingUTF8BOM:     true,
	output.EncodingUTF16LE:     true,
	output.EncodingUTF16BE:     true,
	output.EncodingLatin1:      true,
	output.EncodingWindows1252: true,
}

// Validate reports every structural problem in the manifest, joined into one
// error. A nil result means each entry can be turned into a runner.
func (m *Manifest) Validate() error {
	if m == nil {
		return errors.New("manifest: nil manifest")
	}

	var errs []error
	addf := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("manifest: "+format, args...))
	}

	if !m.Defaults.Mode.Valid() {
		addf("defaults: unknown mode %q", m.Defaults.Mode)
	}
	checkPersistence(addf, "defaults", m.Defaults.Encoding, m.Defaults.LineEnding, m.Defaults.Sanitize)

	if len(m.Templates) == 0 {
		addf("no templates defined")
	}

	seen := make(map[string]int, len(m.Templates))
	for idx, entry := range m.Templates {
		name := strings.TrimSpace(entry.Name)
		label := fmt.Sprintf("templates[%d]", idx)
		if name == "" {
			addf("%s: name is required", label)
		} else {
			label = fmt.Sprintf("template %q", name)
			if first, dup := seen[name]; dup {
				addf("%s: duplicate name (first defined at templates[%d])", label, first)
			} else {
				seen[name] = idx
			}
		}

		if strings.TrimSpace(entry.Output) == "" {
			addf("%s: output is required", label)
		}

		sources := 0
		for _, value := range []string{entry.Template, entry.Inline, entry.Generator} {
			if strings.TrimSpace(value) != "" {
				sources++
			}
		}
		switch {
		case sources == 0:
			addf("%s: one of template, inline or generator is required", label)
		case sources > 1:
			addf("%s: only one of template, inline or generator may be set", label)
		}

		if !entry.Mode.Valid() {
			addf("%s: unknown mode %q", label, entry.Mode)
		}
		checkPersistence(addf, label, entry.Encoding, entry.LineEnding, entry.Sanitize)
	}

	return errors.Join(errs...)
}

func checkPersistence(addf func(string, ...any), label, encoding, lineEnding, sanitize string) {
	if strings.TrimSpace(encoding) != "" {
		if enc := (output.Descriptor{Encoding: encoding}).NormalizedEncoding(); !knownEncodings[enc] {
			addf("%s: unsupported encoding %q", label, encoding)
		}
	}
	switch strings.ToLower(strings.TrimSpace(lineEnding)) {
	case "", output.LineEndingLF, output.LineEndingCRLF:
	default:
		addf("%s: unknown line ending %q", label, lineEnding)
	}
	switch strings.ToLower(strings.TrimSpace(sanitize)) {
	case "", output.SanitizeHTML, output.SanitizeStrict:
	default:
		addf("%s: unknown sanitize policy %q", label, sanitize)
	}
}
