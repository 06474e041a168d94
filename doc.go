// Package gentpl renders code-generation templates into files.
//
// Each template runs through a runner.Runner: initialize, validate, generate,
// with problems collected as Error and Warning diagnostics instead of being
// thrown. A manifest describes a batch of runs and the orchestrator drives
// them:
//
//	report, err := gentpl.RunManifest(ctx, "gentpl.yaml")
//	if err != nil {
//		return err
//	}
//	if report.HasErrors() {
//		for _, d := range report.Diagnostics() {
//			fmt.Println(d)
//		}
//	}
//
// Templates use pongo2 syntax and can read OpenAPI documents through the
// "openapi" context key.
package gentpl
