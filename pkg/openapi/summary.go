package openapi

import (
	"context"
	"errors"
	"strings"
)

// Summary is the template-facing view of an OpenAPI document. JSON names are
// what templates use, e.g. {% for op in openapi.operations %}.
type Summary struct {
	Title       string      `json:"title"`
	Version     string      `json:"version"`
	Description string      `json:"description,omitempty"`
	Servers     []string    `json:"servers,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Operations  []Operation `json:"operations"`
}

// Operation describes one path/method pair.
type Operation struct {
	ID          string   `json:"id"`
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Deprecated  bool     `json:"deprecated"`
	HasBody     bool     `json:"has_body"`
	Responses   []string `json:"responses,omitempty"`
}

// Operation returns the operation with the given id.
func (s Summary) Operation(id string) (Operation, bool) {
	for _, op := range s.Operations {
		if op.ID == id {
			return op, true
		}
	}
	return Operation{}, false
}

// DefaultContextKey is the template variable the summary is exposed under.
const DefaultContextKey = "openapi"

// ContextLoader loads and summarises a document for a template run. It
// satisfies render.ContextLoader.
type ContextLoader struct {
	Loader Loader
	Parser Parser
	Source Source

	// Key names the template variable; empty means DefaultContextKey.
	Key string
}

// LoadContext loads Source, summarises it and returns {Key: summary}.
func (l ContextLoader) LoadContext(ctx context.Context) (map[string]any, error) {
	if l.Loader == nil || l.Parser == nil {
		return nil, errors.New("openapi: context loader requires a loader and a parser")
	}
	if l.Source.IsZero() {
		return nil, errors.New("openapi: context loader requires a source")
	}

	doc, err := l.Loader.Load(ctx, l.Source)
	if err != nil {
		return nil, err
	}
	summary, err := l.Parser.Summarize(ctx, doc)
	if err != nil {
		return nil, err
	}

	key := strings.TrimSpace(l.Key)
	if key == "" {
		key = DefaultContextKey
	}
	return map[string]any{key: summary}, nil
}
