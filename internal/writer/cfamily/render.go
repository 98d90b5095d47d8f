package cfamily

import (
	"fmt"

	"github.com/cardiosim/exprgen/internal/expr"
	"github.com/cardiosim/exprgen/internal/writer"
)

// Ex renders a single expression tree as C-family source text.
func (w *Writer) Ex(e expr.Expression) (string, error) {
	switch n := e.(type) {
	case expr.Name:
		return w.cfg.Name(n), nil
	case expr.Derivative:
		return w.cfg.Name(n), nil
	case expr.PartialDerivative:
		return w.cfg.Name(n), nil
	case expr.InitialValue:
		return w.cfg.Name(n), nil
	case expr.Number:
		return w.number(n), nil

	case expr.PrefixPlus:
		return w.prefix(n, "+", n.Op)
	case expr.PrefixMinus:
		return w.prefix(n, "-", n.Op)

	case expr.Plus:
		return w.infix(n, " + ", n.L, n.R)
	case expr.Minus:
		return w.infix(n, " - ", n.L, n.R)
	case expr.Multiply:
		return w.infix(n, " * ", n.L, n.R)
	case expr.Divide:
		return w.infix(n, " / ", n.L, n.R)

	case expr.Quotient:
		// floor(a / b): round toward negative infinity regardless of
		// the target's truncating integer division.
		return w.Ex(floorQuotient(n.L, n.R))
	case expr.Remainder:
		// a - b * floor(a / b), the modulo paired with Quotient.
		return w.Ex(expr.Minus{
			L: n.L,
			R: expr.Multiply{L: n.R, R: floorQuotient(n.L, n.R)},
		})

	case expr.Power:
		return w.power(n)

	case expr.Sqrt:
		return w.call("sqrt", n.Op)
	case expr.Exp:
		return w.call("exp", n.Op)
	case expr.Log:
		if n.Base == nil {
			return w.call("log", n.Op)
		}
		// log_b(x) = log(x) / log(b)
		return w.Ex(expr.Divide{L: expr.Log{Op: n.Op}, R: expr.Log{Op: n.Base}})
	case expr.Log10:
		return w.call("log10", n.Op)
	case expr.Sin:
		return w.call("sin", n.Op)
	case expr.Cos:
		return w.call("cos", n.Op)
	case expr.Tan:
		return w.call("tan", n.Op)
	case expr.ASin:
		return w.call("asin", n.Op)
	case expr.ACos:
		return w.call("acos", n.Op)
	case expr.ATan:
		return w.call("atan", n.Op)
	case expr.Floor:
		return w.call("floor", n.Op)
	case expr.Ceil:
		return w.call("ceil", n.Op)
	case expr.Abs:
		return w.call("fabs", n.Op)

	case expr.Equal:
		return w.infix(n, " == ", n.L, n.R)
	case expr.NotEqual:
		return w.infix(n, " != ", n.L, n.R)
	case expr.More:
		return w.infix(n, " > ", n.L, n.R)
	case expr.Less:
		return w.infix(n, " < ", n.L, n.R)
	case expr.MoreEqual:
		return w.infix(n, " >= ", n.L, n.R)
	case expr.LessEqual:
		return w.infix(n, " <= ", n.L, n.R)

	case expr.Not:
		inner, err := w.condition(n.Op)
		if err != nil {
			return "", err
		}
		return "!(" + inner + ")", nil
	case expr.And:
		return w.logic(n, " && ", n.L, n.R)
	case expr.Or:
		return w.logic(n, " || ", n.L, n.R)

	case expr.If:
		return w.conditional(n.Cond, n.Then, n.Else)
	case expr.Piecewise:
		// Fold into a chain of nested conditionals; the chain form
		// (ternary or configured function) follows from If rendering.
		return w.Ex(foldPiecewise(n))

	default:
		return "", writer.Unsupported(w.target, e)
	}
}

// foldPiecewise rewrites a piecewise node into right-nested Ifs ending in
// the unconditional default.
func foldPiecewise(pw expr.Piecewise) expr.Expression {
	e := pw.Default
	for i := len(pw.Pieces) - 1; i >= 0; i-- {
		e = expr.If{Cond: pw.Pieces[i].Cond, Then: pw.Pieces[i].Value, Else: e}
	}
	return e
}

func (w *Writer) number(n expr.Number) string {
	s := w.cfg.FormatNumber(n)
	if w.single {
		s += "f"
	}
	return s
}

// floorQuotient is the floor(a / b) call form every dialect renders
// Quotient as. The rewritten node is a call, so the oracle treats it as
// self-delimiting instead of product-class.
func floorQuotient(l, r expr.Expression) expr.Floor {
	return expr.Floor{Op: expr.Divide{L: l, R: r}}
}

// operand renders a direct child, consulting the shared precedence oracle
// for grouping.
func (w *Writer) operand(parent, child expr.Expression, side expr.Side) (string, error) {
	if q, ok := child.(expr.Quotient); ok {
		child = floorQuotient(q.L, q.R)
	}
	s, err := w.Ex(child)
	if err != nil {
		return "", err
	}
	if expr.Bracket(parent, child, side) {
		return "(" + s + ")", nil
	}
	return s, nil
}

func (w *Writer) prefix(parent expr.Expression, op string, operand expr.Expression) (string, error) {
	s, err := w.operand(parent, operand, expr.OnlyOperand)
	if err != nil {
		return "", err
	}
	return op + s, nil
}

func (w *Writer) infix(parent expr.Expression, op string, l, r expr.Expression) (string, error) {
	ls, err := w.operand(parent, l, expr.LeftOperand)
	if err != nil {
		return "", err
	}
	rs, err := w.operand(parent, r, expr.RightOperand)
	if err != nil {
		return "", err
	}
	return ls + op + rs, nil
}

func (w *Writer) call(fn string, op expr.Expression) (string, error) {
	s, err := w.Ex(op)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", w.funcs[fn], s), nil
}

func (w *Writer) power(n expr.Power) (string, error) {
	// Kernel dialects avoid the pow call in the x^2 hot path.
	if w.gpu {
		if exp, ok := n.R.(expr.Number); ok && exp.Value == 2 {
			mul := expr.Multiply{L: n.L, R: n.L}
			ls, err := w.operand(mul, n.L, expr.LeftOperand)
			if err != nil {
				return "", err
			}
			rs, err := w.operand(mul, n.L, expr.RightOperand)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("(%s * %s)", ls, rs), nil
		}
	}
	ls, err := w.Ex(n.L)
	if err != nil {
		return "", err
	}
	rs, err := w.Ex(n.R)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s, %s)", w.funcs["pow"], ls, rs), nil
}

// condition renders an operand used where the target expects a boolean.
// The kernel dialects have no implicit numeric-to-boolean conversion, so a
// non-condition operand is compared against zero explicitly. Comparisons
// and logic already produce the richer condition kind and pass through.
func (w *Writer) condition(e expr.Expression) (string, error) {
	s, err := w.Ex(e)
	if err != nil {
		return "", err
	}
	if w.gpu && !expr.IsCondition(e) {
		return fmt.Sprintf("(%s != %s)", s, w.zero()), nil
	}
	return s, nil
}

func (w *Writer) zero() string {
	if w.single {
		return "0.0f"
	}
	return "0.0"
}

// logic renders And/Or, coercing numeric operands in the kernel dialects
// and bracketing condition operands per the shared oracle.
func (w *Writer) logic(parent expr.Expression, op string, l, r expr.Expression) (string, error) {
	ls, err := w.logicOperand(parent, l, expr.LeftOperand)
	if err != nil {
		return "", err
	}
	rs, err := w.logicOperand(parent, r, expr.RightOperand)
	if err != nil {
		return "", err
	}
	return ls + op + rs, nil
}

func (w *Writer) logicOperand(parent, child expr.Expression, side expr.Side) (string, error) {
	if w.gpu && !expr.IsCondition(child) {
		return w.condition(child)
	}
	return w.operand(parent, child, side)
}

func (w *Writer) conditional(cond, then, els expr.Expression) (string, error) {
	cs, err := w.condition(cond)
	if err != nil {
		return "", err
	}
	ts, err := w.Ex(then)
	if err != nil {
		return "", err
	}
	es, err := w.Ex(els)
	if err != nil {
		return "", err
	}
	if w.cfg.ConditionFunc != "" {
		return fmt.Sprintf("%s(%s, %s, %s)", w.cfg.ConditionFunc, cs, ts, es), nil
	}
	return fmt.Sprintf("(%s ? %s : %s)", cs, ts, es), nil
}
