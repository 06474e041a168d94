package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	gentpl "github.com/goliatone/go-gentpl"
	pkgopenapi "github.com/goliatone/go-gentpl/pkg/openapi"
	"github.com/goliatone/go-gentpl/pkg/output"
	"github.com/goliatone/go-gentpl/pkg/render"
	"github.com/goliatone/go-gentpl/pkg/render/builtin"
	"github.com/goliatone/go-gentpl/pkg/render/template/gotemplate"
	"github.com/goliatone/go-gentpl/pkg/runner"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		out         string
		ifNotExists bool
		params      []string
		templateDir string
		openapiPath string
		encoding    string
	)

	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a single template, or inline template source, to a file or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseParams(params)
			if err != nil {
				return err
			}

			engineOpts := []gotemplate.Option{gotemplate.WithFS(builtin.Templates())}
			if templateDir != "" {
				engineOpts = append(engineOpts, gotemplate.WithBaseDir(templateDir))
			}
			engine, err := gotemplate.New(engineOpts...)
			if err != nil {
				return err
			}

			tpl := &render.Template{Renderer: engine, Params: values}
			if isInline(args[0]) {
				tpl.Source = args[0]
			} else {
				tpl.Name = args[0]
			}
			if openapiPath != "" {
				src, err := pkgopenapi.ParseSource(openapiPath)
				if err != nil {
					return err
				}
				tpl.Loaders = append(tpl.Loaders, pkgopenapi.ContextLoader{
					Loader: gentpl.NewLoader(pkgopenapi.WithRemoteSources()),
					Parser: gentpl.NewParser(),
					Source: src,
				})
			}

			router := gentpl.NewRouter(output.WithLogger(a.logger))
			r := runner.New(tpl,
				runner.WithName("render"),
				runner.WithRouter(router),
				runner.WithLogger(a.logger),
				runner.WithOutput(output.Descriptor{Encoding: encoding}),
				runner.WithPersistOnError(false),
			)

			ctx := cmd.Context()
			switch {
			case out == "":
				text, err := r.TransformContext(ctx)
				if err != nil {
					return err
				}
				if !r.HasErrors() {
					fmt.Fprint(cmd.OutOrStdout(), text)
				}
			case ifNotExists:
				err = r.RenderToFileIfNotExists(ctx, out)
			default:
				err = r.RenderToFile(ctx, out)
			}
			if err != nil {
				return err
			}

			printDiagnostics(cmd.ErrOrStderr(), r.Diagnostics())
			if r.HasErrors() {
				return errDiagnostics
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "destination file (stdout when empty)")
	cmd.Flags().BoolVar(&ifNotExists, "if-not-exists", false, "leave an existing destination untouched")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "template parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&templateDir, "template-dir", "", "directory holding named templates")
	cmd.Flags().StringVar(&openapiPath, "openapi", "", "OpenAPI document exposed to the template as openapi")
	cmd.Flags().StringVar(&encoding, "encoding", "", "output encoding (utf-8, utf-16le, latin1, ...)")
	return cmd
}

func isInline(arg string) bool {
	return strings.Contains(arg, "{{") || strings.Contains(arg, "{%")
}

// parseParams reads key=value pairs. Values are decoded as YAML scalars or
// flow collections, so "n=3" yields an int and "tags=[a, b]" a list; anything
// that fails to decode stays a string.
func parseParams(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q: want key=value", pair)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
			value = raw
		}
		out[key] = value
	}
	return out, nil
}
