package lowerllir

import (
	"fmt"

	"github.com/glu-lang/glu/internal/gil"
)

// namer assigns stable textual names to GIL values. Most values get a
// fresh %N register; literals and chained aggregate-builder intermediates
// are aliased directly to their rendered text instead, so `%3 = add ...,
// 5` prints as a plain `5` wherever it is used as an operand.
type namer struct {
	names map[gil.Value]string
	next  int
}

func newNamer() *namer {
	return &namer{names: map[gil.Value]string{}}
}

func (n *namer) nameOf(v gil.Value) string {
	if v == nil {
		return "void"
	}
	if nm, ok := n.names[v]; ok {
		return nm
	}
	nm := n.fresh()
	n.names[v] = nm
	return nm
}

func (n *namer) fresh() string {
	nm := fmt.Sprintf("%%%d", n.next)
	n.next++
	return nm
}

func (n *namer) alias(v gil.Value, text string) {
	n.names[v] = text
}
