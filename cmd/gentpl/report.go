package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/goliatone/go-gentpl/pkg/diag"
	"github.com/goliatone/go-gentpl/pkg/orchestrator"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen)
	mutedColor   = color.New(color.Faint)
)

func printDiagnostics(w io.Writer, items []diag.Diagnostic) {
	for _, d := range items {
		label := warningColor
		if d.Severity == diag.SeverityError {
			label = errorColor
		}
		if d.Source != "" {
			fmt.Fprintf(w, "%s: ", d.Source)
		}
		label.Fprint(w, d.Severity.String())
		fmt.Fprintf(w, ": %s\n", d.Message)
	}
}

// printReport lists each run followed by its diagnostics.
func printReport(w io.Writer, report orchestrator.Report, verb string) {
	for _, run := range report.Runs {
		switch {
		case !run.Enabled:
			mutedColor.Fprintf(w, "skipped  %s\n", run.Name)
		case run.HasErrors():
			errorColor.Fprintf(w, "failed   %s", run.Name)
			fmt.Fprintf(w, " -> %s\n", run.Path)
		case run.Kept:
			mutedColor.Fprintf(w, "kept     %s", run.Name)
			fmt.Fprintf(w, " -> %s\n", run.Path)
		default:
			okColor.Fprintf(w, "%-8s %s", verb, run.Name)
			fmt.Fprintf(w, " -> %s\n", run.Path)
		}
		printDiagnostics(w, run.Diagnostics)
	}
}
