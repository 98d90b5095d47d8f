// Package markup renders expressions as typeset or structured markup: a
// LaTeX writer producing flat text for documentation, and a MathML writer
// producing labeled element trees in either content (semantic) or
// presentation (visual) mode.
//
// The LaTeX output is for human reading only; conditionals, which have no
// typeset equivalent, render as clearly non-executable pseudo-function
// calls.
//
// The MathML writer emits the same labeled-tree shape the parser consumes,
// which is what makes parser/writer round-trips testable. One asymmetry is
// deliberate: Log(x, 10) is written with an explicit logbase element, and
// re-parsing collapses it to Log10(x) - a different but value-equivalent
// node.
package markup
