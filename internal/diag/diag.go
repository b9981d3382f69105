// Package diag implements the compiler-wide diagnostic sink described in
// spec.md §6/§7: every stage reports through it, severities gate pipeline
// progression between major stages, and the final report is sorted and
// de-duplicated.
package diag

import (
	"fmt"
	"sort"

	"github.com/glu-lang/glu/internal/source"
)

// Severity orders from least to most serious; ordering matters for the
// "≥ Error gates progression" rule in spec.md §7.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal error"
	default:
		return "unknown"
	}
}

// Diagnostic is a single reported issue. Code is a stable string (e.g.
// "SEMA003", "OWN002") grouped by phase per the taxonomy in codes.go.
type Diagnostic struct {
	Severity Severity
	Code     string
	Phase    string
	Message  string
	Pos      source.Pos
}

func (d Diagnostic) String() string {
	if d.Pos.Valid() {
		return fmt.Sprintf("%s: %s: [%s] %s", d.Pos, d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", d.Severity, d.Code, d.Message)
}

// Sink collects diagnostics for a single compilation. It is the only
// mutable global-per-compilation object (spec.md §9 "shared mutable
// state") and is always passed by reference, never stored as a package
// global.
type Sink struct {
	diags       []Diagnostic
	stickyError bool
	stickyFatal bool
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Report appends a diagnostic and updates the sticky severity flags.
func (s *Sink) Report(d Diagnostic) {
	s.diags = append(s.diags, d)
	if d.Severity >= Error {
		s.stickyError = true
	}
	if d.Severity == Fatal {
		s.stickyFatal = true
	}
}

// Report convenience constructors used throughout the pipeline stages.

func (s *Sink) Errorf(code, phase string, pos source.Pos, format string, args ...any) {
	s.Report(Diagnostic{Severity: Error, Code: code, Phase: phase, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Warnf(code, phase string, pos source.Pos, format string, args ...any) {
	s.Report(Diagnostic{Severity: Warning, Code: code, Phase: phase, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Notef(code, phase string, pos source.Pos, format string, args ...any) {
	s.Report(Diagnostic{Severity: Note, Code: code, Phase: phase, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Fatalf(code, phase string, pos source.Pos, format string, args ...any) {
	s.Report(Diagnostic{Severity: Fatal, Code: code, Phase: phase, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any diagnostic of severity ≥ Error has been
// reported so far. This gates advancing past the current major stage
// (spec.md §7's propagation policy).
func (s *Sink) HasErrors() bool { return s.stickyError }

// HasFatal reports whether a Fatal diagnostic has been reported.
// passes.Manager checks it after each pass and runs no further passes once
// it is set.
func (s *Sink) HasFatal() bool { return s.stickyFatal }

// Diagnostics returns all reported diagnostics, sorted by (file, line,
// column) and de-duplicated, per spec.md §5's ordering guarantee.
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Pos, out[j].Pos
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return dedup(out)
}

func dedup(ds []Diagnostic) []Diagnostic {
	if len(ds) < 2 {
		return ds
	}
	out := ds[:1]
	for _, d := range ds[1:] {
		prev := out[len(out)-1]
		if prev == d {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Counts returns the number of diagnostics per severity, used for the
// trailing summary line (spec.md §7).
func (s *Sink) Counts() map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range s.diags {
		counts[d.Severity]++
	}
	return counts
}
