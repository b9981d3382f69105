// Package source defines source positions shared by every stage of the
// pipeline, from the parser's AST through diagnostics.
package source

import "fmt"

// Pos is a single point in a source file.
type Pos struct {
	File   string
	Line   int // 1-based
	Column int // 1-based, in runes
	Offset int // 0-based byte offset
}

// Valid reports whether p carries real location information.
func (p Pos) Valid() bool {
	return p.File != "" && p.Line > 0
}

func (p Pos) String() string {
	if !p.Valid() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open range [Start, End) in a single source file.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) Valid() bool { return s.Start.Valid() }

func (s Span) String() string {
	if !s.Valid() {
		return "<unknown>"
	}
	if s.End.Line == s.Start.Line {
		return fmt.Sprintf("%s:%d:%d-%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}
