package main

import (
	"github.com/spf13/cobra"

	gentpl "github.com/goliatone/go-gentpl"
	"github.com/goliatone/go-gentpl/internal/prompt"
	"github.com/goliatone/go-gentpl/pkg/manifest"
	pkgopenapi "github.com/goliatone/go-gentpl/pkg/openapi"
	"github.com/goliatone/go-gentpl/pkg/orchestrator"
	"github.com/goliatone/go-gentpl/pkg/output"
)

const defaultManifest = "gentpl.yaml"

func newRunCmd(a *app) *cobra.Command {
	var (
		interactive bool
		dryRun      bool
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "run [manifest]",
		Short: "Render every enabled template in a manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultManifest
			if len(args) == 1 {
				path = args[0]
			}

			m, err := manifest.Load(path)
			if err != nil {
				return err
			}

			router := gentpl.NewRouter(output.WithDryRun(dryRun), output.WithLogger(a.logger))
			options := []orchestrator.Option{
				orchestrator.WithRouter(router),
				orchestrator.WithLogger(a.logger),
				orchestrator.WithLoader(gentpl.NewLoader(pkgopenapi.WithRemoteSources(), pkgopenapi.WithDocumentCache(true))),
				orchestrator.WithOutputDir(outputDir),
			}
			if interactive {
				selector := prompt.NewSelector(prompt.NewSurveyDriver(), true)
				selector.ConfirmOverwrite = true
				options = append(options, orchestrator.WithSelector(selector))
			}

			report, err := gentpl.NewOrchestrator(options...).Run(cmd.Context(), m)
			verb := "wrote"
			if dryRun {
				verb = "checked"
			}
			printReport(cmd.OutOrStdout(), report, verb)
			if err != nil {
				return err
			}
			if report.HasErrors() {
				return errDiagnostics
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose templates to render in a prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render without writing files")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "override the manifest output directory")
	return cmd
}
