package expr

// Comparison and logic nodes produce the distinguished Condition sub-kind.
// IsCondition reports whether a node is condition-typed; backends that need
// an explicit numeric/boolean boundary (the GPU kernel writers) use it to
// decide when to coerce.

// Equal is the == comparison.
type Equal struct {
	L, R Expression
}

func (Equal) exprNode() {}

// NotEqual is the != comparison.
type NotEqual struct {
	L, R Expression
}

func (NotEqual) exprNode() {}

// More is the > comparison.
type More struct {
	L, R Expression
}

func (More) exprNode() {}

// Less is the < comparison.
type Less struct {
	L, R Expression
}

func (Less) exprNode() {}

// MoreEqual is the >= comparison.
type MoreEqual struct {
	L, R Expression
}

func (MoreEqual) exprNode() {}

// LessEqual is the <= comparison.
type LessEqual struct {
	L, R Expression
}

func (LessEqual) exprNode() {}

// Not is logical negation of a single condition operand.
type Not struct {
	Op Expression
}

func (Not) exprNode() {}

// And is logical conjunction of two condition operands. Both operands are
// always rendered; short-circuiting happens, if at all, at the value level
// in the target language.
type And struct {
	L, R Expression
}

func (And) exprNode() {}

// Or is logical disjunction of two condition operands.
type Or struct {
	L, R Expression
}

func (Or) exprNode() {}

// If selects between two values on a condition.
type If struct {
	Cond Expression
	Then Expression
	Else Expression
}

func (If) exprNode() {}

// Piece is one (condition, value) alternative of a Piecewise.
type Piece struct {
	Cond  Expression
	Value Expression
}

// Piecewise is a sequence of condition/value pairs plus exactly one
// unconditional trailing default. The pair count k is at least 1, so the
// total operand count 2k+1 is always odd and at least 3.
type Piecewise struct {
	Pieces  []Piece
	Default Expression
}

func (Piecewise) exprNode() {}

// IsCondition reports whether e is condition-typed: a comparison or a
// logical operator. Everything else, including If and Piecewise (which
// select numeric values), is numeric.
func IsCondition(e Expression) bool {
	switch e.(type) {
	case Equal, NotEqual, More, Less, MoreEqual, LessEqual, Not, And, Or:
		return true
	default:
		return false
	}
}
