// Package testutil provides shared expression fixtures for tests. The
// fixtures are classic membrane-model forms, small enough to eyeball in
// failure output but shaped like production input: gated currents, rate
// equations and clamped potentials.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardiosim/exprgen/internal/expr"
	"github.com/cardiosim/exprgen/internal/mathml"
)

// SodiumCurrent returns g_Na * m^3 * h * (V - E_Na), left-folded the way
// the parser folds n-ary products.
func SodiumCurrent() expr.Expression {
	gNa := expr.Name{Ref: "g_Na"}
	m := expr.Name{Ref: "m"}
	h := expr.Name{Ref: "h"}
	v := expr.Name{Ref: "V"}
	eNa := expr.Name{Ref: "E_Na"}

	return expr.Multiply{
		L: expr.Multiply{
			L: expr.Multiply{L: gNa, R: expr.Power{L: m, R: expr.Number{Value: 3}}},
			R: h,
		},
		R: expr.Minus{L: v, R: eNa},
	}
}

// RestingClamp returns a piecewise clamping V at the resting potential:
// V when V > -85, otherwise -85.
func RestingClamp() expr.Expression {
	v := expr.Name{Ref: "V"}
	rest := expr.Number{Value: -85}

	return expr.Piecewise{
		Pieces:  []expr.Piece{{Cond: expr.More{L: v, R: rest}, Value: v}},
		Default: rest,
	}
}

// GateODE returns the equation dm/dt = alpha_m * (1 - m) - beta_m * m as an
// lhs/rhs pair.
func GateODE() (expr.LhsExpression, expr.Expression) {
	m := expr.Name{Ref: "m"}
	alpha := expr.Name{Ref: "alpha_m"}
	beta := expr.Name{Ref: "beta_m"}

	lhs := expr.Derivative{Var: m}
	rhs := expr.Minus{
		L: expr.Multiply{L: alpha, R: expr.Minus{L: expr.Number{Value: 1}, R: m}},
		R: expr.Multiply{L: beta, R: m},
	}
	return lhs, rhs
}

// MustParseMathML decodes and parses an inline MathML document, failing the
// test on any error.
func MustParseMathML(t testing.TB, src string) expr.Expression {
	t.Helper()
	el, err := mathml.DecodeString(src)
	require.NoError(t, err)
	e, err := mathml.Parse(el, mathml.Options{})
	require.NoError(t, err)
	return e
}
