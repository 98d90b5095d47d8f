package mathml

import "github.com/cardiosim/exprgen/internal/expr"

// desugarTrig lowers the extended trigonometric and hyperbolic surface
// forms into the closed elementary node set {Sin, Cos, Tan, ASin, ACos,
// ATan, Exp, Log, Sqrt, Divide, Multiply, Plus, Minus}. The IR never
// represents these forms natively; accepting them here keeps the node-kind
// set closed while widening the input surface.
func desugarTrig(tag string, x expr.Expression) expr.Expression {
	one := expr.Number{Value: 1}
	two := expr.Number{Value: 2}
	half := expr.Number{Value: 0.5}

	// exp(-x) without a prefix node, staying inside the elementary set.
	expNeg := func(x expr.Expression) expr.Expression {
		return expr.Divide{L: one, R: expr.Exp{Op: x}}
	}
	// exp(2x), shared by the tanh and coth forms.
	exp2 := func(x expr.Expression) expr.Expression {
		return expr.Exp{Op: expr.Multiply{L: two, R: x}}
	}
	inv := func(x expr.Expression) expr.Expression {
		return expr.Divide{L: one, R: x}
	}
	square := func(x expr.Expression) expr.Expression {
		return expr.Multiply{L: x, R: x}
	}

	switch tag {
	// Reciprocal trigonometry.
	case "csc":
		return inv(expr.Sin{Op: x})
	case "sec":
		return inv(expr.Cos{Op: x})
	case "cot":
		return inv(expr.Tan{Op: x})

	// Inverse reciprocal trigonometry.
	case "arccsc":
		return expr.ASin{Op: inv(x)}
	case "arcsec":
		return expr.ACos{Op: inv(x)}
	case "arccot":
		return expr.ATan{Op: inv(x)}

	// Hyperbolics via the exponential definitions.
	case "sinh":
		return expr.Multiply{L: half, R: expr.Minus{L: expr.Exp{Op: x}, R: expNeg(x)}}
	case "cosh":
		return expr.Multiply{L: half, R: expr.Plus{L: expr.Exp{Op: x}, R: expNeg(x)}}
	case "tanh":
		return expr.Divide{
			L: expr.Minus{L: exp2(x), R: one},
			R: expr.Plus{L: exp2(x), R: one},
		}

	// Inverse hyperbolics via the logarithmic definitions.
	case "arcsinh":
		return expr.Log{Op: expr.Plus{L: x, R: expr.Sqrt{Op: expr.Plus{L: square(x), R: one}}}}
	case "arccosh":
		return expr.Log{Op: expr.Plus{L: x, R: expr.Sqrt{Op: expr.Minus{L: square(x), R: one}}}}
	case "arctanh":
		return expr.Multiply{L: half, R: expr.Log{
			Op: expr.Divide{L: expr.Plus{L: one, R: x}, R: expr.Minus{L: one, R: x}},
		}}

	// Reciprocal hyperbolics.
	case "csch":
		return expr.Divide{L: two, R: expr.Minus{L: expr.Exp{Op: x}, R: expNeg(x)}}
	case "sech":
		return expr.Divide{L: two, R: expr.Plus{L: expr.Exp{Op: x}, R: expNeg(x)}}
	case "coth":
		return expr.Divide{
			L: expr.Plus{L: exp2(x), R: one},
			R: expr.Minus{L: exp2(x), R: one},
		}

	// Inverse reciprocal hyperbolics: the inverse hyperbolic of 1/x.
	case "arccsch":
		return expr.Log{Op: expr.Plus{L: inv(x), R: expr.Sqrt{Op: expr.Plus{L: inv(square(x)), R: one}}}}
	case "arcsech":
		return expr.Log{Op: expr.Plus{L: inv(x), R: expr.Sqrt{Op: expr.Minus{L: inv(square(x)), R: one}}}}
	case "arccoth":
		return expr.Multiply{L: half, R: expr.Log{
			Op: expr.Divide{L: expr.Plus{L: x, R: one}, R: expr.Minus{L: x, R: one}},
		}}
	}
	// Unreachable: parseApply only routes the tags above here.
	return x
}
