package markup

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

func TestLatexBasics(t *testing.T) {
	w := NewLatex(writer.Config{}, "")

	tests := []struct {
		name string
		in   expr.Expression
		want string
	}{
		{"name", a, `\text{a}`},
		{"number", expr.Number{Value: 1.5}, `1.5`},
		{"plus", expr.Plus{L: a, R: b}, `\text{a} + \text{b}`},
		{"precedence", expr.Multiply{L: expr.Plus{L: a, R: b}, R: c},
			`\left(\text{a} + \text{b}\right) \cdot \text{c}`},
		{"divide", expr.Divide{L: a, R: b}, `\frac{\text{a}}{\text{b}}`},
		{"quotient", expr.Quotient{L: a, R: b},
			`\left\lfloor \frac{\text{a}}{\text{b}} \right\rfloor`},
		{"remainder", expr.Remainder{L: a, R: b}, `\text{a} \bmod \text{b}`},
		{"power", expr.Power{L: a, R: b}, `\text{a}^{\text{b}}`},
		{"sqrt", expr.Sqrt{Op: x}, `\sqrt{\text{x}}`},
		{"exp", expr.Exp{Op: x}, `\exp\left(\text{x}\right)`},
		{"natural log", expr.Log{Op: x}, `\log\left(\text{x}\right)`},
		{"based log", expr.Log{Op: x, Base: expr.Number{Value: 2}},
			`\log_{2.0}\left(\text{x}\right)`},
		{"log10", expr.Log10{Op: x}, `\log_{10}\left(\text{x}\right)`},
		{"floor", expr.Floor{Op: x}, `\left\lfloor \text{x} \right\rfloor`},
		{"ceil", expr.Ceil{Op: x}, `\left\lceil \text{x} \right\rceil`},
		{"abs", expr.Abs{Op: x}, `\left| \text{x} \right|`},
		{"neq", expr.NotEqual{L: a, R: b}, `\text{a} \neq \text{b}`},
		{"and", expr.And{L: expr.More{L: a, R: b}, R: expr.Less{L: a, R: c}},
			`\left(\text{a} > \text{b}\right) \wedge \left(\text{a} < \text{c}\right)`},
		{"not", expr.Not{Op: expr.Equal{L: a, R: b}},
			`\neg\left(\text{a} = \text{b}\right)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, w, tt.in))
		})
	}
}

func TestLatexPowerBracketsBase(t *testing.T) {
	w := NewLatex(writer.Config{}, "")

	nested := expr.Power{L: expr.Power{L: a, R: b}, R: c}
	assert.Equal(t, `\left(\text{a}^{\text{b}}\right)^{\text{c}}`, render(t, w, nested))

	sum := expr.Power{L: expr.Plus{L: a, R: b}, R: c}
	assert.Equal(t, `\left(\text{a} + \text{b}\right)^{\text{c}}`, render(t, w, sum))
}

func TestLatexDerivatives(t *testing.T) {
	v := expr.Name{Ref: "V"}

	w := NewLatex(writer.Config{}, "")
	got := render(t, w, expr.Derivative{Var: v})
	assert.Equal(t, `\frac{\mathrm{d}\text{V}}{\mathrm{d}\text{t}}`, got)

	w = NewLatex(writer.Config{}, "time")
	got = render(t, w, expr.Derivative{Var: v})
	assert.Equal(t, `\frac{\mathrm{d}\text{V}}{\mathrm{d}\text{time}}`, got)

	got = render(t, w, expr.PartialDerivative{Var: v, Wrt: x})
	assert.Equal(t, `\frac{\partial \text{V}}{\partial \text{x}}`, got)
}

func TestLatexEscapesUnderscores(t *testing.T) {
	w := NewLatex(writer.Config{}, "")
	got := render(t, w, expr.Name{Ref: "V_m"})
	assert.Equal(t, `\text{V\_m}`, got)
}

func TestLatexPseudoCalls(t *testing.T) {
	w := NewLatex(writer.Config{}, "")

	ifNode := expr.If{Cond: expr.More{L: a, R: b}, Then: c, Else: x}
	assert.Equal(t,
		`\text{if}\left(\text{a} > \text{b}, \text{c}, \text{x}\right)`,
		render(t, w, ifNode))

	pw := expr.Piecewise{
		Pieces: []expr.Piece{
			{Cond: expr.Less{L: a, R: b}, Value: expr.Number{Value: 1}},
		},
		Default: expr.Number{Value: 2},
	}
	assert.Equal(t,
		`\text{piecewise}\left(\text{a} < \text{b}, 1.0, 2.0\right)`,
		render(t, w, pw))
}

func TestLatexRejectsInitialValue(t *testing.T) {
	w := NewLatex(writer.Config{}, "")

	_, err := w.Ex(expr.InitialValue{Var: x})
	var uerr *writer.UnsupportedError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "latex", uerr.Target)
	assert.Equal(t, "InitialValue", uerr.Kind)
}

func TestLatexEquation(t *testing.T) {
	w := NewLatex(writer.Config{}, "")

	got, err := w.Eq(expr.Derivative{Var: expr.Name{Ref: "V"}}, expr.Divide{L: a, R: b})
	require.NoError(t, err)
	assert.Equal(t,
		`\frac{\mathrm{d}\text{V}}{\mathrm{d}\text{t}} = \frac{\text{a}}{\text{b}}`,
		got)
}

func TestLatexCustomNaming(t *testing.T) {
	w := NewLatex(writer.Config{
		Name: func(lhs expr.LhsExpression) string { return "V_{m}" },
	}, "")
	assert.Equal(t, "V_{m}", render(t, w, expr.Name{Ref: "ignored"}))
}
