package mathml

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/cardiosim/exprgen/internal/expr"
)

// Options configures parsing. Both hooks are optional.
type Options struct {
	// ResolveName maps a <ci> identifier to an expression, typically a
	// Name holding the model's variable object. The default wraps the
	// identifier string itself.
	ResolveName func(name string) (expr.Expression, error)

	// MakeNumber builds a Number from decoded literal text and the
	// element's unit attribute (empty when absent). The default parses
	// the text as a float and attaches the unit tag verbatim.
	MakeNumber func(text, units string) (expr.Number, error)
}

// Parse converts a content-MathML element tree into an expression. The
// root may be a <math> wrapper or the expression element itself.
func Parse(el *Element, opts Options) (expr.Expression, error) {
	p := &parser{opts: opts}
	if p.opts.ResolveName == nil {
		p.opts.ResolveName = func(name string) (expr.Expression, error) {
			return expr.Name{Ref: name}, nil
		}
	}
	if p.opts.MakeNumber == nil {
		p.opts.MakeNumber = func(text, units string) (expr.Number, error) {
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return expr.Number{}, fmt.Errorf("not a decimal number: %q", text)
			}
			return expr.Number{Value: v, Units: units}, nil
		}
	}
	return p.parse(el)
}

type parser struct {
	opts Options
}

// cursor walks an apply's operand elements strictly forward. Optional
// leading sub-elements (logbase, degree, bvar) must be detected before the
// plain operand count is known, so operands are never indexed randomly.
type cursor struct {
	items []*Element
	pos   int
}

func (c *cursor) peek() *Element {
	if c.pos >= len(c.items) {
		return nil
	}
	return c.items[c.pos]
}

func (c *cursor) next() *Element {
	el := c.peek()
	if el != nil {
		c.pos++
	}
	return el
}

func (c *cursor) remaining() int {
	return len(c.items) - c.pos
}

func (p *parser) parse(el *Element) (expr.Expression, error) {
	switch el.Tag {
	case "math":
		if len(el.Children) != 1 {
			return nil, &StructureError{
				Reason:  fmt.Sprintf("<math> must hold exactly one expression, found %d", len(el.Children)),
				Element: el,
			}
		}
		return p.parse(el.Children[0])
	case "apply":
		return p.parseApply(el)
	case "ci":
		name := norm.NFC.String(el.Text())
		if name == "" {
			return nil, &StructureError{Reason: "empty <ci> identifier", Element: el}
		}
		return p.opts.ResolveName(name)
	case "cn":
		return p.parseNumber(el)
	case "piecewise":
		return p.parsePiecewise(el)

	// Named constants. Euler's number maps to Exp(1) rather than a
	// decimal approximation, so no rounding error is baked in.
	case "pi":
		return expr.Number{Value: math.Pi}, nil
	case "exponentiale":
		return expr.Exp{Op: expr.Number{Value: 1}}, nil
	case "true":
		return expr.Number{Value: 1}, nil
	case "false":
		return expr.Number{Value: 0}, nil
	case "notanumber":
		return expr.Number{Value: math.NaN()}, nil
	case "infinity":
		return expr.Number{Value: math.Inf(1)}, nil

	default:
		return nil, &StructureError{Reason: "unrecognized tag", Element: el}
	}
}

func (p *parser) parseApply(el *Element) (expr.Expression, error) {
	if len(el.Children) == 0 {
		return nil, &StructureError{Reason: "empty <apply>", Element: el}
	}
	op := el.Children[0]
	cur := &cursor{items: el.Children[1:]}

	switch op.Tag {
	case "plus", "minus", "times", "divide", "and", "or":
		return p.parseNary(el, op.Tag, cur)

	case "eq", "neq", "gt", "lt", "geq", "leq":
		l, r, err := p.exact2(el, op.Tag, cur)
		if err != nil {
			return nil, err
		}
		switch op.Tag {
		case "eq":
			return expr.Equal{L: l, R: r}, nil
		case "neq":
			return expr.NotEqual{L: l, R: r}, nil
		case "gt":
			return expr.More{L: l, R: r}, nil
		case "lt":
			return expr.Less{L: l, R: r}, nil
		case "geq":
			return expr.MoreEqual{L: l, R: r}, nil
		default:
			return expr.LessEqual{L: l, R: r}, nil
		}

	case "not":
		x, err := p.exact1(el, op.Tag, cur)
		if err != nil {
			return nil, err
		}
		return expr.Not{Op: x}, nil

	case "power":
		l, r, err := p.exact2(el, op.Tag, cur)
		if err != nil {
			return nil, err
		}
		return expr.Power{L: l, R: r}, nil
	case "quotient":
		l, r, err := p.exact2(el, op.Tag, cur)
		if err != nil {
			return nil, err
		}
		return expr.Quotient{L: l, R: r}, nil
	case "rem":
		l, r, err := p.exact2(el, op.Tag, cur)
		if err != nil {
			return nil, err
		}
		return expr.Remainder{L: l, R: r}, nil

	case "root":
		return p.parseRoot(el, cur)
	case "exp":
		x, err := p.exact1(el, op.Tag, cur)
		if err != nil {
			return nil, err
		}
		return expr.Exp{Op: x}, nil
	case "ln":
		x, err := p.exact1(el, op.Tag, cur)
		if err != nil {
			return nil, err
		}
		return expr.Log{Op: x}, nil
	case "log":
		return p.parseLog(el, cur)

	case "sin", "cos", "tan", "arcsin", "arccos", "arctan",
		"floor", "ceiling", "abs":
		x, err := p.exact1(el, op.Tag, cur)
		if err != nil {
			return nil, err
		}
		switch op.Tag {
		case "sin":
			return expr.Sin{Op: x}, nil
		case "cos":
			return expr.Cos{Op: x}, nil
		case "tan":
			return expr.Tan{Op: x}, nil
		case "arcsin":
			return expr.ASin{Op: x}, nil
		case "arccos":
			return expr.ACos{Op: x}, nil
		case "arctan":
			return expr.ATan{Op: x}, nil
		case "floor":
			return expr.Floor{Op: x}, nil
		case "ceiling":
			return expr.Ceil{Op: x}, nil
		default:
			return expr.Abs{Op: x}, nil
		}

	case "csc", "sec", "cot", "arccsc", "arcsec", "arccot",
		"sinh", "cosh", "tanh", "arcsinh", "arccosh", "arctanh",
		"csch", "sech", "coth", "arccsch", "arcsech", "arccoth":
		x, err := p.exact1(el, op.Tag, cur)
		if err != nil {
			return nil, err
		}
		return desugarTrig(op.Tag, x), nil

	case "diff":
		return p.parseDiff(el, cur, false)
	case "partialdiff":
		return p.parseDiff(el, cur, true)

	default:
		return nil, &StructureError{Reason: "unrecognized operator tag", Element: op}
	}
}

// parseNary folds an n-ary surface form left-to-right into strictly binary
// nodes. A single remaining operand selects the unary prefix form where one
// exists; zero operands, or one for a form without a unary equivalent, is
// an arity error naming the expected minimum.
func (p *parser) parseNary(el *Element, op string, cur *cursor) (expr.Expression, error) {
	ops, err := p.operands(cur)
	if err != nil {
		return nil, err
	}
	switch len(ops) {
	case 0:
		return nil, &ArityError{Op: op, Expected: "at least one operand", Actual: 0, Element: el}
	case 1:
		switch op {
		case "plus":
			return expr.PrefixPlus{Op: ops[0]}, nil
		case "minus":
			return expr.PrefixMinus{Op: ops[0]}, nil
		}
		return nil, &ArityError{Op: op, Expected: "at least two operands", Actual: 1, Element: el}
	}
	out := ops[0]
	for _, next := range ops[1:] {
		switch op {
		case "plus":
			out = expr.Plus{L: out, R: next}
		case "minus":
			out = expr.Minus{L: out, R: next}
		case "times":
			out = expr.Multiply{L: out, R: next}
		case "divide":
			out = expr.Divide{L: out, R: next}
		case "and":
			out = expr.And{L: out, R: next}
		case "or":
			out = expr.Or{L: out, R: next}
		}
	}
	return out, nil
}

func (p *parser) parseRoot(el *Element, cur *cursor) (expr.Expression, error) {
	var degree expr.Expression
	if d := cur.peek(); d != nil && d.Tag == "degree" {
		cur.next()
		var err error
		degree, err = p.soleChild(d)
		if err != nil {
			return nil, err
		}
	}
	x, err := p.exact1(el, "root", cur)
	if err != nil {
		return nil, err
	}
	// Degree 2, or no degree, is a plain square root. Any other degree d
	// lowers to Power(x, 1/d).
	if degree == nil {
		return expr.Sqrt{Op: x}, nil
	}
	if n, ok := degree.(expr.Number); ok && n.Value == 2 {
		return expr.Sqrt{Op: x}, nil
	}
	return expr.Power{L: x, R: expr.Divide{L: expr.Number{Value: 1}, R: degree}}, nil
}

func (p *parser) parseLog(el *Element, cur *cursor) (expr.Expression, error) {
	var base expr.Expression
	if b := cur.peek(); b != nil && b.Tag == "logbase" {
		cur.next()
		var err error
		base, err = p.soleChild(b)
		if err != nil {
			return nil, err
		}
	}
	x, err := p.exact1(el, "log", cur)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return expr.Log{Op: x}, nil
	}
	// Base 10 collapses by value, not by literal syntax: re-parsing a
	// written Log(x, 10) yields Log10(x), a different but
	// value-equivalent node. Kept as a compatibility choice.
	if n, ok := base.(expr.Number); ok && n.Value == 10 {
		return expr.Log10{Op: x}, nil
	}
	return expr.Log{Op: x, Base: base}, nil
}

// parseDiff handles diff and partialdiff. The binding variable and the
// differentiated operand must both be direct variable references, and any
// stated degree must equal one.
func (p *parser) parseDiff(el *Element, cur *cursor, partial bool) (expr.Expression, error) {
	b := cur.peek()
	if b == nil || b.Tag != "bvar" {
		return nil, &StructureError{Reason: "derivative requires a leading <bvar>", Element: el}
	}
	cur.next()
	bvar, err := p.parseBvar(b)
	if err != nil {
		return nil, err
	}
	opTag := "diff"
	if partial {
		opTag = "partialdiff"
	}
	operand, err := p.exact1(el, opTag, cur)
	if err != nil {
		return nil, err
	}
	name, ok := operand.(expr.Name)
	if !ok {
		return nil, &StructureError{
			Reason:  "derivatives of composite expressions are not supported",
			Element: el,
		}
	}
	if partial {
		return expr.PartialDerivative{Var: name, Wrt: bvar}, nil
	}
	return expr.Derivative{Var: name}, nil
}

func (p *parser) parseBvar(b *Element) (expr.Name, error) {
	var name *expr.Name
	for _, child := range b.Children {
		switch child.Tag {
		case "ci":
			if name != nil {
				return expr.Name{}, &StructureError{Reason: "multiple variables in <bvar>", Element: b}
			}
			ref, err := p.parse(child)
			if err != nil {
				return expr.Name{}, err
			}
			n, ok := ref.(expr.Name)
			if !ok {
				return expr.Name{}, &StructureError{Reason: "binding variable must be a direct variable reference", Element: b}
			}
			name = &n
		case "degree":
			deg, err := p.soleChild(child)
			if err != nil {
				return expr.Name{}, err
			}
			n, ok := deg.(expr.Number)
			if !ok || n.Value != 1 {
				return expr.Name{}, &StructureError{Reason: "only first-order derivatives are supported", Element: child}
			}
		default:
			return expr.Name{}, &StructureError{Reason: "unexpected element in <bvar>", Element: child}
		}
	}
	if name == nil {
		return expr.Name{}, &StructureError{Reason: "<bvar> must contain a variable reference", Element: b}
	}
	return *name, nil
}

func (p *parser) parsePiecewise(el *Element) (expr.Expression, error) {
	var pieces []expr.Piece
	var def expr.Expression
	for _, child := range el.Children {
		switch child.Tag {
		case "piece":
			if len(child.Children) != 2 {
				return nil, &StructureError{
					Reason:  fmt.Sprintf("<piece> must hold a value and a condition, found %d children", len(child.Children)),
					Element: child,
				}
			}
			value, err := p.parse(child.Children[0])
			if err != nil {
				return nil, err
			}
			cond, err := p.parse(child.Children[1])
			if err != nil {
				return nil, err
			}
			pieces = append(pieces, expr.Piece{Cond: cond, Value: value})
		case "otherwise":
			if def != nil {
				return nil, &StructureError{Reason: "multiple <otherwise> elements", Element: child}
			}
			if len(child.Children) != 1 {
				return nil, &StructureError{
					Reason:  fmt.Sprintf("<otherwise> must hold exactly one value, found %d children", len(child.Children)),
					Element: child,
				}
			}
			var err error
			def, err = p.parse(child.Children[0])
			if err != nil {
				return nil, err
			}
		default:
			return nil, &StructureError{Reason: "unexpected element in <piecewise>", Element: child}
		}
	}
	if len(pieces) == 0 {
		return nil, &StructureError{Reason: "<piecewise> requires at least one <piece>", Element: el}
	}
	// A missing default is auto-filled with zero.
	if def == nil {
		def = expr.Number{Value: 0}
	}
	return expr.Piecewise{Pieces: pieces, Default: def}, nil
}

// soleChild parses the single child of a qualifier element such as
// <degree> or <logbase>.
func (p *parser) soleChild(el *Element) (expr.Expression, error) {
	if len(el.Children) != 1 {
		return nil, &StructureError{
			Reason:  fmt.Sprintf("<%s> must hold exactly one value, found %d children", el.Tag, len(el.Children)),
			Element: el,
		}
	}
	return p.parse(el.Children[0])
}

func (p *parser) operands(cur *cursor) ([]expr.Expression, error) {
	var ops []expr.Expression
	for cur.remaining() > 0 {
		x, err := p.parse(cur.next())
		if err != nil {
			return nil, err
		}
		ops = append(ops, x)
	}
	return ops, nil
}

func (p *parser) exact1(el *Element, op string, cur *cursor) (expr.Expression, error) {
	ops, err := p.operands(cur)
	if err != nil {
		return nil, err
	}
	if len(ops) != 1 {
		return nil, &ArityError{Op: op, Expected: "exactly 1 operand", Actual: len(ops), Element: el}
	}
	return ops[0], nil
}

func (p *parser) exact2(el *Element, op string, cur *cursor) (expr.Expression, expr.Expression, error) {
	ops, err := p.operands(cur)
	if err != nil {
		return nil, nil, err
	}
	if len(ops) != 2 {
		return nil, nil, &ArityError{Op: op, Expected: "exactly 2 operands", Actual: len(ops), Element: el}
	}
	return ops[0], ops[1], nil
}
