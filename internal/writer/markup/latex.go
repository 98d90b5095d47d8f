package markup

import (
	"fmt"
	"strings"

	"github.com/cardiosim/exprgen/internal/expr"
	"github.com/cardiosim/exprgen/internal/writer"
)

// Latex renders expression trees as flat LaTeX source for inclusion in
// documentation. Output is meant for the eye, not for a compiler:
// conditionals become \text{if}(...) and \text{piecewise}(...) pseudo-calls
// that no typesetting convention mistakes for executable code.
type Latex struct {
	cfg     writer.Config
	timeVar string
}

// NewLatex builds a LaTeX writer. timeVar names the independent variable in
// derivative quotients; empty selects "t". ConditionFunc is ignored: the
// pseudo-call form is always used.
func NewLatex(cfg writer.Config, timeVar string) *Latex {
	if cfg.Name == nil {
		cfg.Name = func(lhs expr.LhsExpression) string {
			return texName(writer.DefaultName(lhs))
		}
	}
	if cfg.FormatNumber == nil {
		cfg.FormatNumber = func(n expr.Number) string {
			return writer.FormatFloat(n.Value)
		}
	}
	if timeVar == "" {
		timeVar = "t"
	}
	return &Latex{cfg: cfg, timeVar: timeVar}
}

// Target returns the backend name.
func (w *Latex) Target() string { return "latex" }

// Eq renders lhs = rhs.
func (w *Latex) Eq(lhs, rhs expr.Expression) (string, error) {
	return writer.Equation(w, lhs, rhs)
}

// texName wraps an identifier in \text{}, escaping the underscores that
// compound identifiers carry.
func texName(s string) string {
	return `\text{` + strings.ReplaceAll(s, "_", `\_`) + `}`
}

// Ex renders a single expression tree as LaTeX source.
func (w *Latex) Ex(e expr.Expression) (string, error) {
	switch n := e.(type) {
	case expr.Name:
		return w.cfg.Name(n), nil
	case expr.Derivative:
		return fmt.Sprintf(`\frac{\mathrm{d}%s}{\mathrm{d}%s}`,
			w.cfg.Name(n.Var), texName(w.timeVar)), nil
	case expr.PartialDerivative:
		return fmt.Sprintf(`\frac{\partial %s}{\partial %s}`,
			w.cfg.Name(n.Var), w.cfg.Name(n.Wrt)), nil
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
		return w.infix(n, ` \cdot `, n.L, n.R)
	case expr.Divide:
		// \frac is self-delimiting; neither operand ever brackets.
		return w.frac(n.L, n.R)
	case expr.Quotient:
		inner, err := w.frac(n.L, n.R)
		if err != nil {
			return "", err
		}
		return `\left\lfloor ` + inner + ` \right\rfloor`, nil
	case expr.Remainder:
		return w.infix(n, ` \bmod `, n.L, n.R)

	case expr.Power:
		base, err := w.operand(n, n.L, expr.LeftOperand)
		if err != nil {
			return "", err
		}
		exp, err := w.Ex(n.R)
		if err != nil {
			return "", err
		}
		return base + "^{" + exp + "}", nil

	case expr.Sqrt:
		inner, err := w.Ex(n.Op)
		if err != nil {
			return "", err
		}
		return `\sqrt{` + inner + `}`, nil
	case expr.Exp:
		return w.fn(`\exp`, n.Op)
	case expr.Log:
		if n.Base == nil {
			return w.fn(`\log`, n.Op)
		}
		base, err := w.Ex(n.Base)
		if err != nil {
			return "", err
		}
		return w.fn(`\log_{`+base+`}`, n.Op)
	case expr.Log10:
		return w.fn(`\log_{10}`, n.Op)
	case expr.Sin:
		return w.fn(`\sin`, n.Op)
	case expr.Cos:
		return w.fn(`\cos`, n.Op)
	case expr.Tan:
		return w.fn(`\tan`, n.Op)
	case expr.ASin:
		return w.fn(`\arcsin`, n.Op)
	case expr.ACos:
		return w.fn(`\arccos`, n.Op)
	case expr.ATan:
		return w.fn(`\arctan`, n.Op)
	case expr.Floor:
		inner, err := w.Ex(n.Op)
		if err != nil {
			return "", err
		}
		return `\left\lfloor ` + inner + ` \right\rfloor`, nil
	case expr.Ceil:
		inner, err := w.Ex(n.Op)
		if err != nil {
			return "", err
		}
		return `\left\lceil ` + inner + ` \right\rceil`, nil
	case expr.Abs:
		inner, err := w.Ex(n.Op)
		if err != nil {
			return "", err
		}
		return `\left| ` + inner + ` \right|`, nil

	case expr.Equal:
		return w.infix(n, " = ", n.L, n.R)
	case expr.NotEqual:
		return w.infix(n, ` \neq `, n.L, n.R)
	case expr.More:
		return w.infix(n, " > ", n.L, n.R)
	case expr.Less:
		return w.infix(n, " < ", n.L, n.R)
	case expr.MoreEqual:
		return w.infix(n, ` \geq `, n.L, n.R)
	case expr.LessEqual:
		return w.infix(n, ` \leq `, n.L, n.R)

	case expr.Not:
		inner, err := w.Ex(n.Op)
		if err != nil {
			return "", err
		}
		return `\neg` + group(inner), nil
	case expr.And:
		return w.infix(n, ` \wedge `, n.L, n.R)
	case expr.Or:
		return w.infix(n, ` \vee `, n.L, n.R)

	case expr.If:
		return w.pseudoCall("if", n.Cond, n.Then, n.Else)
	case expr.Piecewise:
		args := make([]expr.Expression, 0, 2*len(n.Pieces)+1)
		for _, p := range n.Pieces {
			args = append(args, p.Cond, p.Value)
		}
		args = append(args, n.Default)
		return w.pseudoCall("piecewise", args...)

	default:
		// InitialValue has no typeset form; it only appears on the LHS
		// of assignments, which this backend does not produce.
		return "", writer.Unsupported(w.Target(), e)
	}
}

func group(s string) string {
	return `\left(` + s + `\right)`
}

func (w *Latex) operand(parent, child expr.Expression, side expr.Side) (string, error) {
	s, err := w.Ex(child)
	if err != nil {
		return "", err
	}
	if expr.Bracket(parent, child, side) {
		return group(s), nil
	}
	return s, nil
}

func (w *Latex) prefix(parent expr.Expression, op string, operand expr.Expression) (string, error) {
	s, err := w.operand(parent, operand, expr.OnlyOperand)
	if err != nil {
		return "", err
	}
	return op + s, nil
}

func (w *Latex) infix(parent expr.Expression, op string, l, r expr.Expression) (string, error) {
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

func (w *Latex) frac(num, den expr.Expression) (string, error) {
	ns, err := w.Ex(num)
	if err != nil {
		return "", err
	}
	ds, err := w.Ex(den)
	if err != nil {
		return "", err
	}
	return `\frac{` + ns + `}{` + ds + `}`, nil
}

func (w *Latex) fn(name string, op expr.Expression) (string, error) {
	s, err := w.Ex(op)
	if err != nil {
		return "", err
	}
	return name + group(s), nil
}

// pseudoCall renders \text{name}\left(a, b, ...\right), the non-executable
// stand-in for constructs LaTeX has no notation for.
func (w *Latex) pseudoCall(name string, args ...expr.Expression) (string, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		s, err := w.Ex(a)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return `\text{` + name + `}` + group(strings.Join(parts, ", ")), nil
}
