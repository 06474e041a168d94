// Package runner drives a single code-generation template through its
// lifecycle: initialize, validate, generate, collect diagnostics and, when
// the run is enabled, dispatch the text to an output.Router.
//
// Expected failures are signalled with TransformationError (see Fail and
// Failf) and surface as Error diagnostics. Every other error is returned to
// the caller unchanged, and panics are never recovered.
//
//	r := runner.New(runner.EmitFunc(func(rc *runner.Context) (string, error) {
//		return "package models\n", nil
//	}), runner.WithRouter(router))
//	if err := r.RenderToFileIfNotExists(ctx, "models/doc.go"); err != nil {
//		return err
//	}
//	for _, d := range r.Diagnostics() {
//		log.Println(d)
//	}
package runner
