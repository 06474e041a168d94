package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("manifest: %s: unsupported extension (want .json, .yaml, .yml or .toml)", path)
	}
}

// Load reads and validates a manifest from disk. Relative directories and
// OpenAPI paths are resolved against the manifest's directory.
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	m, err := parse(data, format, path)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	m.Source = abs
	m.ResolvePaths(filepath.Dir(abs))

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFS reads and validates a manifest from fsys. Paths are left as written
// since fsys has no location on disk; call ResolvePaths when they should be
// anchored somewhere.
func LoadFS(fsys fs.FS, name string) (*Manifest, error) {
	if fsys == nil {
		return nil, errors.New("manifest: filesystem is nil")
	}
	format, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", name, err)
	}
	m, err := parse(data, format, name)
	if err != nil {
		return nil, err
	}
	m.Source = name
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Parse decodes a manifest without validating it.
func Parse(data []byte, format Format) (*Manifest, error) {
	return parse(data, format, "<input>")
}

func parse(data []byte, format Format, source string) (*Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("manifest: %s is empty", source)
	}

	var m Manifest
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		dec.UseNumber()
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("manifest: parse %s: %w", source, err)
		}
		m.Globals = normaliseNumbers(m.Globals)
		m.Defaults.Params = normaliseNumbers(m.Defaults.Params)
		for i := range m.Templates {
			m.Templates[i].Params = normaliseNumbers(m.Templates[i].Params)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("manifest: parse %s: %w", source, err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, fmt.Errorf("manifest: parse %s: %w", source, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, key := range undecoded {
				keys = append(keys, key.String())
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("manifest: parse %s: unknown keys %s", source, strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("manifest: unsupported format %q", format)
	}
	return &m, nil
}

// ResolvePaths anchors relative OutputDir, TemplateDir and OpenAPI paths at
// dir. URLs are left alone.
func (m *Manifest) ResolvePaths(dir string) {
	if m == nil || dir == "" {
		return
	}
	m.OutputDir = anchor(dir, m.OutputDir)
	m.TemplateDir = anchor(dir, m.TemplateDir)
	for i := range m.Templates {
		spec := m.Templates[i].OpenAPI
		if strings.HasPrefix(spec, "http://") || strings.HasPrefix(spec, "https://") {
			continue
		}
		m.Templates[i].OpenAPI = anchor(dir, spec)
	}
}

func anchor(dir, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// json.Number values become int64 when integral and float64 otherwise, which
// is what the template engine expects.
func normaliseNumbers(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	for k, v := range in {
		in[k] = normaliseNumber(v)
	}
	return in
}

func normaliseNumber(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		return normaliseNumbers(v)
	case []any:
		for i := range v {
			v[i] = normaliseNumber(v[i])
		}
		return v
	default:
		return value
	}
}
