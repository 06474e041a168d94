package output

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Encodings understood by the filesystem router.
const (
	EncodingUTF8        = "utf-8"
	EncodingUTF8BOM     = "utf-8-bom"
	EncodingUTF16LE     = "utf-16le"
	EncodingUTF16BE     = "utf-16be"
	EncodingLatin1      = "iso-8859-1"
	EncodingWindows1252 = "windows-1252"
)

// Line ending normalisation modes.
const (
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
)

// Sanitising policies applied to markup output.
const (
	SanitizeHTML   = "html"
	SanitizeStrict = "strict"
)

// DefaultMode is used when a Descriptor leaves Mode unset.
const DefaultMode fs.FileMode = 0o644

// Descriptor tells output routing where and how to persist generated text.
// Each template run owns exactly one Descriptor; callers mutate it before a
// render call and routers only read it.
type Descriptor struct {
	// Path is the destination. Relative paths are joined to Directory.
	Path string

	// Directory anchors relative paths. Empty means the router's base dir.
	Directory string

	// Encoding selects the byte encoding written to disk. Empty means UTF-8.
	Encoding string

	// LineEnding optionally normalises line breaks ("lf" or "crlf").
	LineEnding string

	// Sanitize optionally runs markup output through an HTML policy.
	Sanitize string

	// Mode is the file mode for newly written files.
	Mode fs.FileMode

	// Metadata carries free-form placement hints for custom routers.
	Metadata map[string]string
}

// Resolve joins Directory and Path. Absolute paths are returned cleaned and
// unchanged; an empty Path yields an empty string.
func (d Descriptor) Resolve() string {
	path := strings.TrimSpace(d.Path)
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) || strings.TrimSpace(d.Directory) == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(d.Directory, path)
}

// FileMode returns Mode or DefaultMode when unset.
func (d Descriptor) FileMode() fs.FileMode {
	if d.Mode == 0 {
		return DefaultMode
	}
	return d.Mode
}

// NormalizedEncoding lower-cases Encoding and maps aliases to the canonical
// constants. Unknown names are returned lower-cased so routers can report them.
func (d Descriptor) NormalizedEncoding() string {
	enc := strings.ToLower(strings.TrimSpace(d.Encoding))
	switch enc {
	case "", "utf8", EncodingUTF8:
		return EncodingUTF8
	case "utf8-bom", "utf-8bom", EncodingUTF8BOM:
		return EncodingUTF8BOM
	case "utf16le", "utf-16", EncodingUTF16LE:
		return EncodingUTF16LE
	case "utf16be", EncodingUTF16BE:
		return EncodingUTF16BE
	case "latin1", "latin-1", "iso8859-1", EncodingLatin1:
		return EncodingLatin1
	case "cp1252", "windows1252", EncodingWindows1252:
		return EncodingWindows1252
	default:
		return enc
	}
}

// Clone returns a deep copy so callers can snapshot a descriptor.
func (d Descriptor) Clone() Descriptor {
	out := d
	if len(d.Metadata) > 0 {
		out.Metadata = make(map[string]string, len(d.Metadata))
		for k, v := range d.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
