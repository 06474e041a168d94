package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-gentpl/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

var methodOrder = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS", "HEAD", "PATCH", "TRACE"}

// Summarize loads the document and flattens its operations, sorted by path
// then by method in the order above.
func (p *Parser) Summarize(ctx context.Context, doc pkgopenapi.Document) (pkgopenapi.Summary, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Summary{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgopenapi.Summary{}, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return pkgopenapi.Summary{}, fmt.Errorf("openapi parser: load document: %s: %w", doc.Source(), err)
	}

	if spec.Paths == nil || spec.Paths.Len() == 0 {
		if !p.options.AllowPartialDocuments {
			return pkgopenapi.Summary{}, errors.New("openapi parser: document does not contain any paths")
		}
	}

	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return pkgopenapi.Summary{}, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	summary := pkgopenapi.Summary{}
	if spec.Info != nil {
		summary.Title = spec.Info.Title
		summary.Version = spec.Info.Version
		summary.Description = spec.Info.Description
	}
	for _, server := range spec.Servers {
		if server != nil && server.URL != "" {
			summary.Servers = append(summary.Servers, server.URL)
		}
	}
	for _, tag := range spec.Tags {
		if tag != nil && tag.Name != "" {
			summary.Tags = append(summary.Tags, tag.Name)
		}
	}

	if spec.Paths != nil {
		paths := spec.Paths.InMatchingOrder()
		sort.Strings(paths)
		for _, path := range paths {
			item := spec.Paths.Value(path)
			if item == nil {
				continue
			}
			for _, method := range methodOrder {
				op := item.GetOperation(method)
				if op == nil {
					continue
				}
				summary.Operations = append(summary.Operations, convertOperation(method, path, op))
			}
		}
	}

	return summary, nil
}

func convertOperation(method, path string, op *openapi3.Operation) pkgopenapi.Operation {
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	out := pkgopenapi.Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
		Deprecated:  op.Deprecated,
		HasBody:     op.RequestBody != nil,
	}
	if len(op.Tags) > 0 {
		out.Tags = append([]string(nil), op.Tags...)
	}
	if op.Responses != nil {
		for status := range op.Responses.Map() {
			out.Responses = append(out.Responses, status)
		}
		sort.Strings(out.Responses)
	}
	return out
}
