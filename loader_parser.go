package gentpl

import (
	internalLoader "github.com/goliatone/go-gentpl/internal/openapi/loader"
	internalParser "github.com/goliatone/go-gentpl/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-gentpl/pkg/openapi"
)

// NewLoader constructs an OpenAPI loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs an OpenAPI parser backed by kin-openapi.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}
