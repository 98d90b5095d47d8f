package expr

// Side identifies which operand slot of the parent a child occupies. The
// precedence oracle needs it only to resolve same-class pairings, where
// associativity direction decides.
type Side int

const (
	// OnlyOperand is the single operand of a unary node.
	OnlyOperand Side = iota
	// LeftOperand is the first operand of a binary node.
	LeftOperand
	// RightOperand is the second operand of a binary node.
	RightOperand
)

// Precedence classes, weakest-binding first. Atoms (references, literals,
// function calls) never participate: they bracket themselves or need no
// grouping at all.
const (
	classAtom = iota
	classConditional
	classSum
	classProduct
	classPrefix
	classPower
)

// class assigns every node kind a precedence class. The mapping is total:
// kinds without infix/prefix surface syntax (names, function calls, If,
// Piecewise) are atoms because every backend renders them self-delimiting.
func class(e Expression) int {
	switch n := e.(type) {
	case Equal, NotEqual, More, Less, MoreEqual, LessEqual, Not, And, Or:
		return classConditional
	case Plus, Minus:
		return classSum
	case Multiply, Divide, Quotient, Remainder:
		return classProduct
	case PrefixPlus, PrefixMinus:
		return classPrefix
	case Power:
		return classPower
	case Number:
		// A negative literal renders with a leading sign, so it binds
		// like a prefix-minus: (-2.0)^3 needs the group, x * -2.0 not.
		if n.Value < 0 {
			return classPrefix
		}
		return classAtom
	default:
		return classAtom
	}
}

// Bracket reports whether child, rendered inline as the given operand of
// parent, must be enclosed in syntactic grouping. This single oracle is
// shared by every backend so precedence bugs cannot diverge between targets.
//
// The oracle is total over all node-kind pairs; there is no failure mode.
//
// Rules, in order:
//   - A self-delimiting child (atom class) never brackets.
//   - A self-delimiting parent never brackets its operands; call syntax
//     already separates them.
//   - A child binding weaker than its parent always brackets.
//   - Within one class: sum and product are left-associative, so only the
//     right operand brackets; Power brackets a base that is itself in the
//     power class (forcing left-to-right evaluation) and never brackets its
//     exponent; conditional and prefix operands bracket for legibility in
//     every target.
func Bracket(parent, child Expression, side Side) bool {
	pc := class(parent)
	cc := class(child)
	if cc == classAtom || pc == classAtom {
		return false
	}
	if cc != pc {
		return cc < pc
	}
	switch pc {
	case classSum, classProduct:
		return side == RightOperand
	case classPower:
		return side == LeftOperand
	default:
		// Same-class conditional or prefix pairings: mixed logic
		// operators and stacked signs always group.
		return true
	}
}
