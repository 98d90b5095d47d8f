package writer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cardiosim/exprgen/internal/expr"
)

// NamingFunc resolves a left-hand-side node (Name, Derivative,
// PartialDerivative or InitialValue) to a backend-appropriate identifier.
// The framework never inspects Name.Ref itself; all naming policy lives in
// the caller's function.
type NamingFunc func(expr.LhsExpression) string

// NumberFormatter renders a numeric literal. Backends that decorate
// literals (single-precision suffixes, exponent markup) wrap the configured
// formatter rather than replacing the policy.
type NumberFormatter func(expr.Number) string

// Config is the shared configuration surface of every writer. It is set
// once at construction; mutating it while a render is in flight is not
// supported.
type Config struct {
	// Name resolves LHS references. Nil selects DefaultName.
	Name NamingFunc

	// FormatNumber renders numeric literals. Nil selects the backend's
	// default, which builds on FormatFloat.
	FormatNumber NumberFormatter

	// ConditionFunc, when non-empty, names a ternary-emulation function:
	// conditionals render as fname(cond, a, b) instead of the target's
	// inline form, recursively through chained piecewise nodes. Backends
	// whose target has no inline conditional at all require it and fail
	// at construction without it.
	ConditionFunc string
}

// Writer is a concrete translator from IR to one target syntax.
type Writer interface {
	// Ex renders a single expression tree.
	Ex(e expr.Expression) (string, error)
	// Eq renders an equation lhs = rhs.
	Eq(lhs, rhs expr.Expression) (string, error)
}

// Equation is the generic lhs = rhs rendering shared by the flat-text
// backends.
func Equation(w Writer, lhs, rhs expr.Expression) (string, error) {
	l, err := w.Ex(lhs)
	if err != nil {
		return "", err
	}
	r, err := w.Ex(rhs)
	if err != nil {
		return "", err
	}
	return l + " = " + r, nil
}

// DefaultName is the naming function used when Config.Name is nil. It
// prints the raw reference and derives conventional compound identifiers
// for the restricted LHS operations.
func DefaultName(lhs expr.LhsExpression) string {
	switch n := lhs.(type) {
	case expr.Name:
		return fmt.Sprint(n.Ref)
	case expr.Derivative:
		return fmt.Sprintf("d%v_dt", n.Var.Ref)
	case expr.PartialDerivative:
		return fmt.Sprintf("d%v_d%v", n.Var.Ref, n.Wrt.Ref)
	case expr.InitialValue:
		return fmt.Sprintf("init_%v", n.Var.Ref)
	default:
		return fmt.Sprint(lhs)
	}
}

// FormatFloat renders a float with the shortest representation that parses
// back exactly, forcing a decimal point or exponent so that C-family
// targets read the literal as floating, never integral.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
