package expr

// Expression is the sealed interface implemented by every IR node.
//
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in backend writers: a writer that omits a kind
// reports an unsupported-kind error instead of silently dropping content.
type Expression interface {
	exprNode() // Marker method - seals interface to this package
}

// LhsExpression is the sealed sub-interface of nodes that may appear on the
// left-hand side of an equation: a variable reference or a restricted
// operation on one (derivative, partial derivative, initial value).
//
// These are the only nodes ever passed to a writer's naming function.
type LhsExpression interface {
	Expression
	lhsNode() // Marker method - seals interface to this package
}

// Name references an external variable identity.
//
// Ref is a weak, non-owning link: typically the model's variable object, or
// a bare string when no variable context is available. Nothing in this core
// inspects Ref beyond handing it to a caller-supplied naming function.
type Name struct {
	Ref any
}

func (Name) exprNode() {}
func (Name) lhsNode()  {}

// Derivative is the time derivative of a direct variable reference.
// It never wraps a composite sub-expression.
type Derivative struct {
	Var Name
}

func (Derivative) exprNode() {}
func (Derivative) lhsNode()  {}

// PartialDerivative is the derivative of one variable reference with respect
// to another. Both operands are direct references, never sub-expressions.
type PartialDerivative struct {
	Var Name
	Wrt Name
}

func (PartialDerivative) exprNode() {}
func (PartialDerivative) lhsNode()  {}

// InitialValue references the initial value of a state variable.
type InitialValue struct {
	Var Name
}

func (InitialValue) exprNode() {}
func (InitialValue) lhsNode()  {}

// Number is an immutable floating literal with an optional physical-unit
// tag. Most backends ignore Units; unit-aware callers may inspect it.
type Number struct {
	Value float64
	Units string
}

func (Number) exprNode() {}
