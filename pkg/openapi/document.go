package openapi

import (
	"bytes"
	"fmt"
)

// Format is the serialisation of a loaded document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is a loaded, not yet parsed, OpenAPI payload. Templates never see
// it; they receive the Summary a Parser builds from it.
type Document struct {
	source Source
	format Format
	raw    []byte
}

// NewDocument wraps data read from src. A payload starting with '{' is JSON,
// anything else is treated as YAML.
func NewDocument(src Source, data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Document{}, fmt.Errorf("openapi: document %s is empty", src)
	}
	format := FormatYAML
	if trimmed[0] == '{' {
		format = FormatJSON
	}
	return Document{source: src, format: format, raw: append([]byte(nil), data...)}, nil
}

// MustNewDocument is NewDocument for fixtures; it panics on error.
func MustNewDocument(src Source, data []byte) Document {
	doc, err := NewDocument(src, data)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

func (d Document) Format() Format { return d.format }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}
