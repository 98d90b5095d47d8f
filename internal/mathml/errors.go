package mathml

import "fmt"

// Parse errors carry the offending element so a failure is actionable
// without re-running with tracing. Nothing here is recoverable: ambiguous
// or underspecified input is always a hard failure and the "ignore and
// continue" policy, if any, belongs to the caller.

// ArityError reports an operator applied to the wrong number of operands.
type ArityError struct {
	// Op is the operator tag, e.g. "times".
	Op string
	// Expected is the human-readable requirement, e.g. "at least two
	// operands" or "exactly 2 operands".
	Expected string
	// Actual is the operand count found.
	Actual int
	// Element is the offending apply element.
	Element *Element
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("mathml: <%s> expecting %s, got %d", e.Op, e.Expected, e.Actual)
}

// LiteralError reports a numeric or text literal that could not be decoded.
type LiteralError struct {
	Reason  string
	Element *Element
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("mathml: malformed literal in <%s>: %s", e.Element.Tag, e.Reason)
}

// StructureError reports a structural violation: wrong child count,
// duplicate default, a missing required sub-element, or an unrecognized
// tag.
type StructureError struct {
	Reason  string
	Element *Element
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("mathml: malformed structure at <%s>: %s", e.Element.Tag, e.Reason)
}
