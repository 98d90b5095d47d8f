package dynamic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiosim/exprgen/internal/expr"
	"github.com/cardiosim/exprgen/internal/writer"
)

var (
	a = expr.Name{Ref: "a"}
	b = expr.Name{Ref: "b"}
	c = expr.Name{Ref: "c"}
	x = expr.Name{Ref: "x"}
)

func render(t *testing.T, w writer.Writer, e expr.Expression) string {
	t.Helper()
	s, err := w.Ex(e)
	require.NoError(t, err)
	return s
}

func TestPythonBasics(t *testing.T) {
	w := NewPython(writer.Config{})

	tests := []struct {
		name string
		in   expr.Expression
		want string
	}{
		{"plus", expr.Plus{L: a, R: b}, "a + b"},
		{"precedence", expr.Multiply{L: expr.Plus{L: a, R: b}, R: c}, "(a + b) * c"},
		{"sqrt", expr.Sqrt{Op: x}, "math.sqrt(x)"},
		{"abs builtin", expr.Abs{Op: x}, "abs(x)"},
		{"two-arg log", expr.Log{Op: x, Base: expr.Number{Value: 10}}, "math.log(x, 10.0)"},
		{"natural log", expr.Log{Op: x}, "math.log(x)"},
		{"log10", expr.Log10{Op: x}, "math.log10(x)"},
		{"not", expr.Not{Op: expr.More{L: a, R: b}}, "not (a > b)"},
		{"and", expr.And{L: expr.More{L: a, R: b}, R: expr.Less{L: a, R: c}}, "(a > b) and (a < c)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, w, tt.in))
		})
	}
}

func TestPythonNativeFloorDivision(t *testing.T) {
	w := NewPython(writer.Config{})

	// Python's // and % already round toward negative infinity: mapped
	// directly, never synthesized. The exact inverse of the C family.
	assert.Equal(t, "a // b", render(t, w, expr.Quotient{L: a, R: b}))
	assert.Equal(t, "a % b", render(t, w, expr.Remainder{L: a, R: b}))
}

func TestPythonPowerAssociativity(t *testing.T) {
	w := NewPython(writer.Config{})

	// ** right-associates natively; the IR is left-associative, so a
	// Power base that is a Power is re-bracketed.
	nested := expr.Power{L: expr.Power{L: a, R: b}, R: c}
	assert.Equal(t, "(a ** b) ** c", render(t, w, nested))

	tower := expr.Power{L: a, R: expr.Power{L: b, R: c}}
	assert.Equal(t, "a ** b ** c", render(t, w, tower))
}

func TestPythonConditional(t *testing.T) {
	w := NewPython(writer.Config{})

	ifNode := expr.If{Cond: expr.More{L: a, R: b}, Then: c, Else: x}
	assert.Equal(t, "(c if a > b else x)", render(t, w, ifNode))

	pw := expr.Piecewise{
		Pieces: []expr.Piece{
			{Cond: expr.Less{L: a, R: b}, Value: expr.Number{Value: 1}},
			{Cond: expr.More{L: a, R: b}, Value: expr.Number{Value: 2}},
		},
		Default: expr.Number{Value: 3},
	}
	assert.Equal(t, "(1.0 if a < b else (2.0 if a > b else 3.0))", render(t, w, pw))
}

func TestNumPyQualifiedFunctions(t *testing.T) {
	w := NewNumPy(writer.Config{})

	assert.Equal(t, "numpy.sqrt(x)", render(t, w, expr.Sqrt{Op: x}))
	assert.Equal(t, "numpy.arcsin(x)", render(t, w, expr.ASin{Op: x}))
	assert.Equal(t, "numpy.log(x) / numpy.log(2.0)",
		render(t, w, expr.Log{Op: x, Base: expr.Number{Value: 2}}))
	assert.Equal(t, "numpy.logical_and(a > b, a < c)",
		render(t, w, expr.And{L: expr.More{L: a, R: b}, R: expr.Less{L: a, R: c}}))
	assert.Equal(t, "numpy.logical_not(a > b)",
		render(t, w, expr.Not{Op: expr.More{L: a, R: b}}))
}

func TestNumPySelect(t *testing.T) {
	w := NewNumPy(writer.Config{})

	pw := expr.Piecewise{
		Pieces: []expr.Piece{
			{Cond: expr.Less{L: a, R: b}, Value: expr.Number{Value: 1}},
			{Cond: expr.More{L: a, R: b}, Value: expr.Number{Value: 2}},
		},
		Default: expr.Number{Value: 3},
	}
	assert.Equal(t,
		"numpy.select([a < b, a > b], [1.0, 2.0], 3.0)",
		render(t, w, pw))

	ifNode := expr.If{Cond: expr.More{L: a, R: b}, Then: c, Else: x}
	assert.Equal(t, "numpy.select([a > b], [c], x)", render(t, w, ifNode))
}

func TestMATLABRequiresConditionFunc(t *testing.T) {
	_, err := NewMATLAB(writer.Config{})
	require.Error(t, err)
	var missing *writer.MissingConfigError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "matlab", missing.Target)
	assert.Equal(t, "ConditionFunc", missing.Field)
}

func TestMATLABRendering(t *testing.T) {
	w, err := NewMATLAB(writer.Config{ConditionFunc: "ifthenelse"})
	require.NoError(t, err)

	assert.Equal(t, "floor(a / b)", render(t, w, expr.Quotient{L: a, R: b}))
	assert.Equal(t, "mod(a, b)", render(t, w, expr.Remainder{L: a, R: b}))
	assert.Equal(t, "a ^ b", render(t, w, expr.Power{L: a, R: b}))
	assert.Equal(t, "a ~= b", render(t, w, expr.NotEqual{L: a, R: b}))
	assert.Equal(t, "~(a == b)", render(t, w, expr.Not{Op: expr.Equal{L: a, R: b}}))
	assert.Equal(t, "(a > b) & (a < c)",
		render(t, w, expr.And{L: expr.More{L: a, R: b}, R: expr.Less{L: a, R: c}}))
	assert.Equal(t, "ifthenelse(a > b, c, x)",
		render(t, w, expr.If{Cond: expr.More{L: a, R: b}, Then: c, Else: x}))
}

func TestStanRequiresConditionFunc(t *testing.T) {
	_, err := NewStan(writer.Config{})
	require.Error(t, err)
	var missing *writer.MissingConfigError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "stan", missing.Target)
}

func TestStanRendering(t *testing.T) {
	w, err := NewStan(writer.Config{ConditionFunc: "if_then_else"})
	require.NoError(t, err)

	// Stan's fmod truncates, so the remainder falls back to the
	// synthesized floor form.
	assert.Equal(t, "floor(a / b)", render(t, w, expr.Quotient{L: a, R: b}))
	assert.Equal(t, "a - b * floor(a / b)", render(t, w, expr.Remainder{L: a, R: b}))
	assert.Equal(t, "fabs(x)", render(t, w, expr.Abs{Op: x}))
	assert.Equal(t, "(a ^ b) ^ c",
		render(t, w, expr.Power{L: expr.Power{L: a, R: b}, R: c}))
	assert.Equal(t, "if_then_else(a > b, c, x)",
		render(t, w, expr.If{Cond: expr.More{L: a, R: b}, Then: c, Else: x}))
}

func TestQuotientOperandGrouping(t *testing.T) {
	// Rendered as a call (MATLAB, Stan), a quotient operand delimits
	// itself. Rendered as the native operator (Python), the group stays:
	// floor division shares precedence with multiplication.
	m, err := NewMATLAB(writer.Config{ConditionFunc: "ifthenelse"})
	require.NoError(t, err)
	assert.Equal(t, "x * floor(a / b)",
		render(t, m, expr.Multiply{L: x, R: expr.Quotient{L: a, R: b}}))

	s, err := NewStan(writer.Config{ConditionFunc: "if_then_else"})
	require.NoError(t, err)
	assert.Equal(t, "x * floor(a / b)",
		render(t, s, expr.Multiply{L: x, R: expr.Quotient{L: a, R: b}}))

	p := NewPython(writer.Config{})
	assert.Equal(t, "x * (a // b)",
		render(t, p, expr.Multiply{L: x, R: expr.Quotient{L: a, R: b}}))
}

func TestDynamicEquation(t *testing.T) {
	w := NewPython(writer.Config{})
	out, err := w.Eq(expr.Derivative{Var: expr.Name{Ref: "V"}}, expr.Divide{L: a, R: b})
	require.NoError(t, err)
	assert.Equal(t, "dV_dt = a / b", out)
}

func TestDynamicUnsupportedKind(t *testing.T) {
	w := NewPython(writer.Config{})
	_, err := w.Ex(nil)
	require.Error(t, err)
	var unsup *writer.UnsupportedError
	require.ErrorAs(t, err, &unsup)
}
