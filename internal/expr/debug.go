package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint renders a tree in a compact prefix debug form, e.g.
// Plus(Name(V), Number(1)). It is for diagnostics and test failure output
// only; backends never use it.
func Sprint(e Expression) string {
	var b strings.Builder
	sprint(&b, e)
	return b.String()
}

func sprint(b *strings.Builder, e Expression) {
	switch n := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case Name:
		fmt.Fprintf(b, "Name(%v)", n.Ref)
	case Derivative:
		b.WriteString("Derivative(")
		sprint(b, n.Var)
		b.WriteByte(')')
	case PartialDerivative:
		b.WriteString("PartialDerivative(")
		sprint(b, n.Var)
		b.WriteString(", ")
		sprint(b, n.Wrt)
		b.WriteByte(')')
	case InitialValue:
		b.WriteString("InitialValue(")
		sprint(b, n.Var)
		b.WriteByte(')')
	case Number:
		b.WriteString("Number(")
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
		if n.Units != "" {
			b.WriteString(" [")
			b.WriteString(n.Units)
			b.WriteByte(']')
		}
		b.WriteByte(')')
	case PrefixPlus:
		unary(b, "PrefixPlus", n.Op)
	case PrefixMinus:
		unary(b, "PrefixMinus", n.Op)
	case Plus:
		binary(b, "Plus", n.L, n.R)
	case Minus:
		binary(b, "Minus", n.L, n.R)
	case Multiply:
		binary(b, "Multiply", n.L, n.R)
	case Divide:
		binary(b, "Divide", n.L, n.R)
	case Quotient:
		binary(b, "Quotient", n.L, n.R)
	case Remainder:
		binary(b, "Remainder", n.L, n.R)
	case Power:
		binary(b, "Power", n.L, n.R)
	case Sqrt:
		unary(b, "Sqrt", n.Op)
	case Exp:
		unary(b, "Exp", n.Op)
	case Log:
		if n.Base == nil {
			unary(b, "Log", n.Op)
		} else {
			binary(b, "Log", n.Op, n.Base)
		}
	case Log10:
		unary(b, "Log10", n.Op)
	case Sin:
		unary(b, "Sin", n.Op)
	case Cos:
		unary(b, "Cos", n.Op)
	case Tan:
		unary(b, "Tan", n.Op)
	case ASin:
		unary(b, "ASin", n.Op)
	case ACos:
		unary(b, "ACos", n.Op)
	case ATan:
		unary(b, "ATan", n.Op)
	case Floor:
		unary(b, "Floor", n.Op)
	case Ceil:
		unary(b, "Ceil", n.Op)
	case Abs:
		unary(b, "Abs", n.Op)
	case Equal:
		binary(b, "Equal", n.L, n.R)
	case NotEqual:
		binary(b, "NotEqual", n.L, n.R)
	case More:
		binary(b, "More", n.L, n.R)
	case Less:
		binary(b, "Less", n.L, n.R)
	case MoreEqual:
		binary(b, "MoreEqual", n.L, n.R)
	case LessEqual:
		binary(b, "LessEqual", n.L, n.R)
	case Not:
		unary(b, "Not", n.Op)
	case And:
		binary(b, "And", n.L, n.R)
	case Or:
		binary(b, "Or", n.L, n.R)
	case If:
		b.WriteString("If(")
		sprint(b, n.Cond)
		b.WriteString(", ")
		sprint(b, n.Then)
		b.WriteString(", ")
		sprint(b, n.Else)
		b.WriteByte(')')
	case Piecewise:
		b.WriteString("Piecewise(")
		for _, p := range n.Pieces {
			sprint(b, p.Cond)
			b.WriteString(", ")
			sprint(b, p.Value)
			b.WriteString(", ")
		}
		sprint(b, n.Default)
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "Unknown(%T)", e)
	}
}

func unary(b *strings.Builder, kind string, op Expression) {
	b.WriteString(kind)
	b.WriteByte('(')
	sprint(b, op)
	b.WriteByte(')')
}

func binary(b *strings.Builder, kind string, l, r Expression) {
	b.WriteString(kind)
	b.WriteByte('(')
	sprint(b, l)
	b.WriteString(", ")
	sprint(b, r)
	b.WriteByte(')')
}
