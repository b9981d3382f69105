package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/glu-lang/glu/internal/diag"
	"github.com/glu-lang/glu/internal/source"
)

// Severity-colored label functions, grounded on the teacher's
// cmd/ailang/main.go color.New(...).SprintFunc() convention for status
// output (green/red/yellow/cyan there; red for errors, yellow for
// warnings, cyan for notes, green for the location itself here).
var (
	colorPos   = color.New(color.FgGreen).SprintFunc()
	colorError = color.New(color.FgRed, color.Bold).SprintFunc()
	colorWarn  = color.New(color.FgYellow).SprintFunc()
	colorNote  = color.New(color.FgCyan).SprintFunc()
)

// printDiagnostics renders every diagnostic sink collected, sorted and
// de-duplicated by (file, line, column), with the offending source line
// and a caret underneath, followed by a trailing error/warning/note
// summary (spec.md §7).
func printDiagnostics(w io.Writer, sink *diag.Sink, cache *source.Cache) {
	for _, d := range sink.Diagnostics() {
		fmt.Fprintf(w, "%s: %s: [%s] %s\n", colorPos(d.Pos.String()), severityLabel(d.Severity), d.Code, d.Message)
		if rendered := cache.Render(d.Pos); rendered != "" {
			fmt.Fprintln(w, rendered)
		}
	}
	printSummary(w, sink.Counts())
}

func severityLabel(s diag.Severity) string {
	switch s {
	case diag.Fatal, diag.Error:
		return colorError(s.String())
	case diag.Warning:
		return colorWarn(s.String())
	default:
		return colorNote(s.String())
	}
}

func printSummary(w io.Writer, counts map[diag.Severity]int) {
	fmt.Fprintf(w, "%d error(s), %d warning(s), %d note(s)\n",
		counts[diag.Error]+counts[diag.Fatal], counts[diag.Warning], counts[diag.Note])
}
