// Package mathml converts content MathML into the expression IR and back.
//
// The package works on a generic labeled tree, Element, rather than raw
// markup: a node has a tag, attributes, ordered child elements and text
// fragments. Element decodes from and encodes to XML, but the parser and
// the content writer are independent of character-level syntax, which is
// what makes writer output round-trippable through the parser in tests.
//
// Parsing is a pure recursive descent with no persistent state. Every
// malformed input is a hard, deterministic error carrying the offending
// element; policy decisions like "ignore and continue" belong to callers.
package mathml
