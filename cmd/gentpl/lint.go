package main

import (
	"fmt"

	"github.com/spf13/cobra"

	gentpl "github.com/goliatone/go-gentpl"
	"github.com/goliatone/go-gentpl/pkg/manifest"
	pkgopenapi "github.com/goliatone/go-gentpl/pkg/openapi"
	"github.com/goliatone/go-gentpl/pkg/orchestrator"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [manifest...]",
		Short: "Validate manifests and render their templates without writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{defaultManifest}
			}
			out := cmd.OutOrStdout()

			gen := gentpl.NewOrchestrator(
				orchestrator.WithLogger(a.logger),
				orchestrator.WithLoader(gentpl.NewLoader(pkgopenapi.WithRemoteSources(), pkgopenapi.WithDocumentCache(true))),
			)

			failed := false
			for _, path := range args {
				m, err := manifest.Load(path)
				if err != nil {
					errorColor.Fprint(out, "invalid")
					fmt.Fprintf(out, "  %s\n%v\n", path, err)
					failed = true
					continue
				}
				report, err := gen.Check(cmd.Context(), m)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				fmt.Fprintf(out, "%s\n", path)
				printReport(out, report, "ok")
				if report.HasErrors() {
					failed = true
				}
			}
			if failed {
				return errDiagnostics
			}
			return nil
		},
	}
}
