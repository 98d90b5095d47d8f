package markup

import (
	"strconv"
	"strings"

	"github.com/cardiosim/exprgen/internal/expr"
	"github.com/cardiosim/exprgen/internal/mathml"
	"github.com/cardiosim/exprgen/internal/writer"
)

// Mode selects which MathML vocabulary the writer emits. The two modes are
// mutually exclusive per writer instance.
type Mode int

const (
	// Content emits semantic markup: one operator tag per IR node kind,
	// the same shape the parser consumes.
	Content Mode = iota
	// Presentation emits visual markup: mrow/mfrac/msup layout with
	// explicit operator glyphs.
	Presentation
)

// Thresholds outside which content literals switch to the two-fragment
// e-notation encoding.
const (
	eNotationLow  = 1e-4
	eNotationHigh = 1e7
)

// MathML renders expression trees as labeled element trees in either
// content or presentation vocabulary. Tree returns the element form; Ex and
// Eq serialize it for the flat-text writer contract.
type MathML struct {
	cfg     writer.Config
	mode    Mode
	timeVar string
}

// NewMathML builds a MathML writer in the given mode. timeVar names the
// bound variable of time derivatives; empty selects "t". ConditionFunc is
// ignored: both vocabularies have a native piecewise form or pseudo-call.
func NewMathML(cfg writer.Config, mode Mode, timeVar string) *MathML {
	if cfg.Name == nil {
		cfg.Name = writer.DefaultName
	}
	if cfg.FormatNumber == nil {
		cfg.FormatNumber = func(n expr.Number) string {
			return writer.FormatFloat(n.Value)
		}
	}
	if timeVar == "" {
		timeVar = "t"
	}
	return &MathML{cfg: cfg, mode: mode, timeVar: timeVar}
}

// Target returns the backend name.
func (w *MathML) Target() string {
	if w.mode == Presentation {
		return "mathml-presentation"
	}
	return "mathml-content"
}

// Ex renders a single expression tree as serialized markup.
func (w *MathML) Ex(e expr.Expression) (string, error) {
	el, err := w.Tree(e)
	if err != nil {
		return "", err
	}
	return el.String(), nil
}

// Eq renders an equation: <apply><eq/>l r</apply> in content mode, an mrow
// with an = glyph in presentation mode.
func (w *MathML) Eq(lhs, rhs expr.Expression) (string, error) {
	l, err := w.Tree(lhs)
	if err != nil {
		return "", err
	}
	r, err := w.Tree(rhs)
	if err != nil {
		return "", err
	}
	var el *mathml.Element
	if w.mode == Presentation {
		el = mathml.NewElement("mrow", l, mathml.NewText("mo", "="), r)
	} else {
		el = mathml.NewElement("apply", mathml.NewElement("eq"), l, r)
	}
	return el.String(), nil
}

// Tree renders a single expression as an element tree. One dispatch serves
// both modes; only the per-kind renderers differ.
func (w *MathML) Tree(e expr.Expression) (*mathml.Element, error) {
	switch n := e.(type) {
	case expr.Name:
		return w.ident(w.cfg.Name(n)), nil
	case expr.Derivative:
		return w.derivative(n)
	case expr.PartialDerivative:
		return w.partial(n)
	case expr.Number:
		return w.number(n), nil

	case expr.PrefixPlus:
		return w.unarySign(n, "plus", "+", n.Op)
	case expr.PrefixMinus:
		return w.unarySign(n, "minus", "-", n.Op)

	case expr.Plus:
		return w.binary(n, "plus", "+", n.L, n.R)
	case expr.Minus:
		return w.binary(n, "minus", "-", n.L, n.R)
	case expr.Multiply:
		return w.binary(n, "times", "·", n.L, n.R)
	case expr.Divide:
		if w.mode == Presentation {
			return w.fraction(n.L, n.R)
		}
		return w.apply("divide", n.L, n.R)
	case expr.Quotient:
		return w.quotient(n)
	case expr.Remainder:
		return w.binary(n, "rem", "mod", n.L, n.R)

	case expr.Power:
		if w.mode == Presentation {
			base, err := w.operand(n, n.L, expr.LeftOperand)
			if err != nil {
				return nil, err
			}
			exp, err := w.Tree(n.R)
			if err != nil {
				return nil, err
			}
			return mathml.NewElement("msup", base, exp), nil
		}
		return w.apply("power", n.L, n.R)

	case expr.Sqrt:
		if w.mode == Presentation {
			inner, err := w.Tree(n.Op)
			if err != nil {
				return nil, err
			}
			return mathml.NewElement("msqrt", inner), nil
		}
		return w.apply("root", n.Op)
	case expr.Exp:
		return w.fn("exp", "exp", n.Op)
	case expr.Log:
		return w.log(n)
	case expr.Log10:
		return w.logBase(expr.Number{Value: 10}, n.Op)
	case expr.Sin:
		return w.fn("sin", "sin", n.Op)
	case expr.Cos:
		return w.fn("cos", "cos", n.Op)
	case expr.Tan:
		return w.fn("tan", "tan", n.Op)
	case expr.ASin:
		return w.fn("arcsin", "arcsin", n.Op)
	case expr.ACos:
		return w.fn("arccos", "arccos", n.Op)
	case expr.ATan:
		return w.fn("arctan", "arctan", n.Op)
	case expr.Floor:
		return w.delimited("floor", "⌊", "⌋", n.Op)
	case expr.Ceil:
		return w.delimited("ceiling", "⌈", "⌉", n.Op)
	case expr.Abs:
		return w.delimited("abs", "|", "|", n.Op)

	case expr.Equal:
		return w.binary(n, "eq", "=", n.L, n.R)
	case expr.NotEqual:
		return w.binary(n, "neq", "≠", n.L, n.R)
	case expr.More:
		return w.binary(n, "gt", ">", n.L, n.R)
	case expr.Less:
		return w.binary(n, "lt", "<", n.L, n.R)
	case expr.MoreEqual:
		return w.binary(n, "geq", "≥", n.L, n.R)
	case expr.LessEqual:
		return w.binary(n, "leq", "≤", n.L, n.R)

	case expr.Not:
		if w.mode == Presentation {
			inner, err := w.Tree(n.Op)
			if err != nil {
				return nil, err
			}
			return mathml.NewElement("mrow",
				mathml.NewText("mo", "¬"),
				mathml.NewElement("mfenced", inner)), nil
		}
		return w.apply("not", n.Op)
	case expr.And:
		return w.binary(n, "and", "∧", n.L, n.R)
	case expr.Or:
		return w.binary(n, "or", "∨", n.L, n.R)

	case expr.If:
		return w.piecewise([]expr.Piece{{Cond: n.Cond, Value: n.Then}}, n.Else)
	case expr.Piecewise:
		return w.piecewise(n.Pieces, n.Default)

	default:
		// InitialValue and any future LHS-only kinds have no markup form.
		return nil, writer.Unsupported(w.Target(), e)
	}
}

func (w *MathML) ident(name string) *mathml.Element {
	if w.mode == Presentation {
		return mathml.NewText("mi", name)
	}
	return mathml.NewText("ci", name)
}

func (w *MathML) number(n expr.Number) *mathml.Element {
	if w.mode == Presentation {
		return mathml.NewText("mn", w.cfg.FormatNumber(n))
	}
	abs := n.Value
	if abs < 0 {
		abs = -abs
	}
	var el *mathml.Element
	if abs != 0 && (abs < eNotationLow || abs >= eNotationHigh) {
		mantissa, exponent := splitENotation(n.Value)
		el = &mathml.Element{Tag: "cn", Fragments: []string{mantissa, exponent}}
		el.SetAttr("type", "e-notation")
	} else {
		el = mathml.NewText("cn", w.cfg.FormatNumber(n))
	}
	if n.Units != "" {
		el.SetAttr("units", n.Units)
	}
	return el
}

// splitENotation decomposes a float into the mantissa and exponent
// fragments of a <cn type="e-notation"> literal.
func splitENotation(v float64) (string, string) {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[i+1:])
	mantissa := s[:i]
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	return mantissa, strconv.Itoa(exp)
}

// apply builds the content form <apply><tag/>args...</apply>.
func (w *MathML) apply(tag string, args ...expr.Expression) (*mathml.Element, error) {
	el := mathml.NewElement("apply", mathml.NewElement(tag))
	for _, a := range args {
		child, err := w.Tree(a)
		if err != nil {
			return nil, err
		}
		el.Children = append(el.Children, child)
	}
	return el, nil
}

// operand renders a presentation-mode child, fencing it per the shared
// precedence oracle. Content mode never fences: the tree is the grouping.
func (w *MathML) operand(parent, child expr.Expression, side expr.Side) (*mathml.Element, error) {
	el, err := w.Tree(child)
	if err != nil {
		return nil, err
	}
	if expr.Bracket(parent, child, side) {
		return mathml.NewElement("mfenced", el), nil
	}
	return el, nil
}

func (w *MathML) unarySign(parent expr.Expression, tag, glyph string, op expr.Expression) (*mathml.Element, error) {
	if w.mode == Presentation {
		inner, err := w.operand(parent, op, expr.OnlyOperand)
		if err != nil {
			return nil, err
		}
		return mathml.NewElement("mrow", mathml.NewText("mo", glyph), inner), nil
	}
	return w.apply(tag, op)
}

func (w *MathML) binary(parent expr.Expression, tag, glyph string, l, r expr.Expression) (*mathml.Element, error) {
	if w.mode == Presentation {
		ls, err := w.operand(parent, l, expr.LeftOperand)
		if err != nil {
			return nil, err
		}
		rs, err := w.operand(parent, r, expr.RightOperand)
		if err != nil {
			return nil, err
		}
		return mathml.NewElement("mrow", ls, mathml.NewText("mo", glyph), rs), nil
	}
	return w.apply(tag, l, r)
}

func (w *MathML) fraction(num, den expr.Expression) (*mathml.Element, error) {
	ns, err := w.Tree(num)
	if err != nil {
		return nil, err
	}
	ds, err := w.Tree(den)
	if err != nil {
		return nil, err
	}
	return mathml.NewElement("mfrac", ns, ds), nil
}

func (w *MathML) quotient(n expr.Quotient) (*mathml.Element, error) {
	if w.mode == Presentation {
		frac, err := w.fraction(n.L, n.R)
		if err != nil {
			return nil, err
		}
		return mathml.NewElement("mrow",
			mathml.NewText("mo", "⌊"), frac, mathml.NewText("mo", "⌋")), nil
	}
	return w.apply("quotient", n.L, n.R)
}

// fn renders a unary elementary function: a content apply, or the visual
// name-and-fenced-argument row.
func (w *MathML) fn(tag, display string, op expr.Expression) (*mathml.Element, error) {
	if w.mode == Presentation {
		inner, err := w.Tree(op)
		if err != nil {
			return nil, err
		}
		return mathml.NewElement("mrow",
			mathml.NewText("mi", display),
			mathml.NewElement("mfenced", inner)), nil
	}
	return w.apply(tag, op)
}

func (w *MathML) log(n expr.Log) (*mathml.Element, error) {
	if n.Base == nil {
		return w.fn("ln", "ln", n.Op)
	}
	return w.logBase(n.Base, n.Op)
}

// logBase renders a based logarithm. In content mode the base is written as
// an explicit <logbase> qualifier, including base ten: re-parsing yields a
// Log10 node, which is value-equivalent but not structurally identical.
func (w *MathML) logBase(base, op expr.Expression) (*mathml.Element, error) {
	b, err := w.Tree(base)
	if err != nil {
		return nil, err
	}
	if w.mode == Presentation {
		inner, err := w.Tree(op)
		if err != nil {
			return nil, err
		}
		return mathml.NewElement("mrow",
			mathml.NewElement("msub", mathml.NewText("mi", "log"), b),
			mathml.NewElement("mfenced", inner)), nil
	}
	x, err := w.Tree(op)
	if err != nil {
		return nil, err
	}
	return mathml.NewElement("apply",
		mathml.NewElement("log"),
		mathml.NewElement("logbase", b),
		x), nil
}

// delimited renders floor, ceiling and abs: a content apply, or the operand
// between its visual delimiters.
func (w *MathML) delimited(tag, open, closing string, op expr.Expression) (*mathml.Element, error) {
	if w.mode == Presentation {
		inner, err := w.Tree(op)
		if err != nil {
			return nil, err
		}
		return mathml.NewElement("mrow",
			mathml.NewText("mo", open), inner, mathml.NewText("mo", closing)), nil
	}
	return w.apply(tag, op)
}

func (w *MathML) derivative(n expr.Derivative) (*mathml.Element, error) {
	if w.mode == Presentation {
		return mathml.NewElement("mfrac",
			mathml.NewElement("mrow",
				mathml.NewText("mo", "d"), mathml.NewText("mi", w.cfg.Name(n.Var))),
			mathml.NewElement("mrow",
				mathml.NewText("mo", "d"), mathml.NewText("mi", w.timeVar))), nil
	}
	return mathml.NewElement("apply",
		mathml.NewElement("diff"),
		mathml.NewElement("bvar", mathml.NewText("ci", w.timeVar)),
		mathml.NewText("ci", w.cfg.Name(n.Var))), nil
}

func (w *MathML) partial(n expr.PartialDerivative) (*mathml.Element, error) {
	if w.mode == Presentation {
		return mathml.NewElement("mfrac",
			mathml.NewElement("mrow",
				mathml.NewText("mo", "∂"), mathml.NewText("mi", w.cfg.Name(n.Var))),
			mathml.NewElement("mrow",
				mathml.NewText("mo", "∂"), mathml.NewText("mi", w.cfg.Name(n.Wrt)))), nil
	}
	return mathml.NewElement("apply",
		mathml.NewElement("partialdiff"),
		mathml.NewElement("bvar", mathml.NewText("ci", w.cfg.Name(n.Wrt))),
		mathml.NewText("ci", w.cfg.Name(n.Var))), nil
}

func (w *MathML) piecewise(pieces []expr.Piece, def expr.Expression) (*mathml.Element, error) {
	if w.mode == Presentation {
		args := make([]expr.Expression, 0, 2*len(pieces)+1)
		for _, p := range pieces {
			args = append(args, p.Cond, p.Value)
		}
		args = append(args, def)
		fenced := mathml.NewElement("mfenced")
		for _, a := range args {
			el, err := w.Tree(a)
			if err != nil {
				return nil, err
			}
			fenced.Children = append(fenced.Children, el)
		}
		return mathml.NewElement("mrow",
			mathml.NewText("mi", "piecewise"), fenced), nil
	}
	el := mathml.NewElement("piecewise")
	for _, p := range pieces {
		value, err := w.Tree(p.Value)
		if err != nil {
			return nil, err
		}
		cond, err := w.Tree(p.Cond)
		if err != nil {
			return nil, err
		}
		el.Children = append(el.Children, mathml.NewElement("piece", value, cond))
	}
	otherwise, err := w.Tree(def)
	if err != nil {
		return nil, err
	}
	el.Children = append(el.Children, mathml.NewElement("otherwise", otherwise))
	return el, nil
}
