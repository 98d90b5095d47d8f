package dynamic

import (
	"fmt"
	"strings"

	"github.com/cardiosim/exprgen/internal/expr"
	"github.com/cardiosim/exprgen/internal/writer"
)

// Ex renders a single expression tree as target source text.
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
		return w.cfg.FormatNumber(n), nil

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
		if w.floorDiv != "" {
			// The native operator already rounds toward negative
			// infinity in this family.
			return w.infix(n, w.floorDiv, n.L, n.R)
		}
		return w.Ex(floorQuotient(n.L, n.R))
	case expr.Remainder:
		if w.modOp != "" {
			return w.infix(n, w.modOp, n.L, n.R)
		}
		if w.modFunc != "" {
			return w.call2(w.modFunc, n.L, n.R)
		}
		// Truncating native modulo: synthesize the floor form.
		return w.Ex(expr.Minus{
			L: n.L,
			R: expr.Multiply{L: n.R, R: floorQuotient(n.L, n.R)},
		})

	case expr.Power:
		return w.infix(n, w.powerOp, n.L, n.R)

	case expr.Sqrt:
		return w.call("sqrt", n.Op)
	case expr.Exp:
		return w.call("exp", n.Op)
	case expr.Log:
		if n.Base == nil {
			return w.call("log", n.Op)
		}
		if w.logTwoArg {
			return w.call2(w.funcs["log"], n.Op, n.Base)
		}
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
		return w.call("abs", n.Op)

	case expr.Equal:
		return w.infix(n, " == ", n.L, n.R)
	case expr.NotEqual:
		return w.infix(n, w.neqOp, n.L, n.R)
	case expr.More:
		return w.infix(n, " > ", n.L, n.R)
	case expr.Less:
		return w.infix(n, " < ", n.L, n.R)
	case expr.MoreEqual:
		return w.infix(n, " >= ", n.L, n.R)
	case expr.LessEqual:
		return w.infix(n, " <= ", n.L, n.R)

	case expr.Not:
		if w.useSelect {
			return w.namedCall(w.funcs["logical_not"], n.Op)
		}
		s, err := w.Ex(n.Op)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(w.notFmt, s), nil
	case expr.And:
		if w.useSelect {
			return w.call2(w.funcs["logical_and"], n.L, n.R)
		}
		return w.infix(n, w.andOp, n.L, n.R)
	case expr.Or:
		if w.useSelect {
			return w.call2(w.funcs["logical_or"], n.L, n.R)
		}
		return w.infix(n, w.orOp, n.L, n.R)

	case expr.If:
		return w.conditional([]expr.Piece{{Cond: n.Cond, Value: n.Then}}, n.Else)
	case expr.Piecewise:
		return w.conditional(n.Pieces, n.Default)

	default:
		return "", writer.Unsupported(w.target, e)
	}
}

// floorQuotient is the floor(a / b) call form a Quotient takes when the
// target has no floor-division operator. The rewritten node is a call, so
// the oracle treats it as self-delimiting instead of product-class.
func floorQuotient(l, r expr.Expression) expr.Floor {
	return expr.Floor{Op: expr.Divide{L: l, R: r}}
}

func (w *Writer) operand(parent, child expr.Expression, side expr.Side) (string, error) {
	if q, ok := child.(expr.Quotient); ok && w.floorDiv == "" {
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

func (w *Writer) call2(fn string, l, r expr.Expression) (string, error) {
	ls, err := w.Ex(l)
	if err != nil {
		return "", err
	}
	rs, err := w.Ex(r)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s, %s)", fn, ls, rs), nil
}

func (w *Writer) namedCall(fn string, op expr.Expression) (string, error) {
	s, err := w.Ex(op)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", fn, s), nil
}

// conditional renders If and Piecewise through one path: a configured
// ternary-emulation function, the vectorized select, or the target's
// inline conditional, in that order. MATLAB and Stan always take the first
// branch because construction requires ConditionFunc.
func (w *Writer) conditional(pieces []expr.Piece, def expr.Expression) (string, error) {
	if w.cfg.ConditionFunc != "" {
		return w.conditionChain(pieces, def)
	}
	if w.useSelect {
		return w.selectCall(pieces, def)
	}
	if w.inlineIf != nil {
		return w.inlineChain(pieces, def)
	}
	return "", &writer.MissingConfigError{Target: w.target, Field: "ConditionFunc"}
}

func (w *Writer) conditionChain(pieces []expr.Piece, def expr.Expression) (string, error) {
	out, err := w.Ex(def)
	if err != nil {
		return "", err
	}
	for i := len(pieces) - 1; i >= 0; i-- {
		cs, err := w.Ex(pieces[i].Cond)
		if err != nil {
			return "", err
		}
		vs, err := w.Ex(pieces[i].Value)
		if err != nil {
			return "", err
		}
		out = fmt.Sprintf("%s(%s, %s, %s)", w.cfg.ConditionFunc, cs, vs, out)
	}
	return out, nil
}

func (w *Writer) inlineChain(pieces []expr.Piece, def expr.Expression) (string, error) {
	out, err := w.Ex(def)
	if err != nil {
		return "", err
	}
	for i := len(pieces) - 1; i >= 0; i-- {
		cs, err := w.Ex(pieces[i].Cond)
		if err != nil {
			return "", err
		}
		vs, err := w.Ex(pieces[i].Value)
		if err != nil {
			return "", err
		}
		out = w.inlineIf(cs, vs, out)
	}
	return out, nil
}

// selectCall collects the full condition list, the matching value list and
// the trailing default into one vectorized select construct.
func (w *Writer) selectCall(pieces []expr.Piece, def expr.Expression) (string, error) {
	conds := make([]string, len(pieces))
	values := make([]string, len(pieces))
	for i, p := range pieces {
		cs, err := w.Ex(p.Cond)
		if err != nil {
			return "", err
		}
		vs, err := w.Ex(p.Value)
		if err != nil {
			return "", err
		}
		conds[i] = cs
		values[i] = vs
	}
	ds, err := w.Ex(def)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("numpy.select([%s], [%s], %s)",
		strings.Join(conds, ", "), strings.Join(values, ", "), ds), nil
}
