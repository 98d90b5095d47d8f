package expr

// PrefixPlus is the unary + operator.
type PrefixPlus struct {
	Op Expression
}

func (PrefixPlus) exprNode() {}

// PrefixMinus is the unary - operator.
type PrefixMinus struct {
	Op Expression
}

func (PrefixMinus) exprNode() {}

// Plus is binary addition. N-ary surface forms are folded left-to-right
// into nested Plus nodes before construction.
type Plus struct {
	L, R Expression
}

func (Plus) exprNode() {}

// Minus is binary subtraction.
type Minus struct {
	L, R Expression
}

func (Minus) exprNode() {}

// Multiply is binary multiplication.
type Multiply struct {
	L, R Expression
}

func (Multiply) exprNode() {}

// Divide is true (floating) division.
type Divide struct {
	L, R Expression
}

func (Divide) exprNode() {}

// Quotient is integer division rounding toward negative infinity,
// regardless of the target language's native convention.
type Quotient struct {
	L, R Expression
}

func (Quotient) exprNode() {}

// Remainder is the modulo paired with Quotient: the result has the sign of
// the divisor (round-toward-negative-infinity convention).
type Remainder struct {
	L, R Expression
}

func (Remainder) exprNode() {}

// Power is exponentiation. The IR form is left-associative: Power on the
// base side evaluates first. Backends whose native operator right-associates
// must re-bracket.
type Power struct {
	L, R Expression
}

func (Power) exprNode() {}

// Sqrt is the square root.
type Sqrt struct {
	Op Expression
}

func (Sqrt) exprNode() {}

// Exp is the natural exponential.
type Exp struct {
	Op Expression
}

func (Exp) exprNode() {}

// Log is the logarithm. Base nil means natural log; a non-nil Base selects
// an explicit-base logarithm log_Base(Op).
type Log struct {
	Op   Expression
	Base Expression
}

func (Log) exprNode() {}

// Log10 is the base-10 logarithm.
type Log10 struct {
	Op Expression
}

func (Log10) exprNode() {}

// Sin is the sine.
type Sin struct {
	Op Expression
}

func (Sin) exprNode() {}

// Cos is the cosine.
type Cos struct {
	Op Expression
}

func (Cos) exprNode() {}

// Tan is the tangent.
type Tan struct {
	Op Expression
}

func (Tan) exprNode() {}

// ASin is the inverse sine.
type ASin struct {
	Op Expression
}

func (ASin) exprNode() {}

// ACos is the inverse cosine.
type ACos struct {
	Op Expression
}

func (ACos) exprNode() {}

// ATan is the inverse tangent.
type ATan struct {
	Op Expression
}

func (ATan) exprNode() {}

// Floor rounds toward negative infinity.
type Floor struct {
	Op Expression
}

func (Floor) exprNode() {}

// Ceil rounds toward positive infinity.
type Ceil struct {
	Op Expression
}

func (Ceil) exprNode() {}

// Abs is the absolute value.
type Abs struct {
	Op Expression
}

func (Abs) exprNode() {}
