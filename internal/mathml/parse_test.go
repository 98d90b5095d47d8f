package mathml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiosim/exprgen/internal/expr"
)

func parseString(t *testing.T, doc string) (expr.Expression, error) {
	t.Helper()
	el, err := DecodeString(doc)
	require.NoError(t, err)
	return Parse(el, Options{})
}

func mustParse(t *testing.T, doc string) expr.Expression {
	t.Helper()
	e, err := parseString(t, doc)
	require.NoError(t, err)
	return e
}

func name(s string) expr.Name { return expr.Name{Ref: s} }
func num(v float64) expr.Number {
	return expr.Number{Value: v}
}

func TestParseBasics(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want expr.Expression
	}{
		{"identifier", `<math><ci>V</ci></math>`, name("V")},
		{"number", `<math><cn>1.5</cn></math>`, num(1.5)},
		{"binary plus", `<apply><plus/><ci>a</ci><ci>b</ci></apply>`,
			expr.Plus{L: name("a"), R: name("b")}},
		{"comparison", `<apply><geq/><ci>a</ci><cn>0</cn></apply>`,
			expr.MoreEqual{L: name("a"), R: num(0)}},
		{"power", `<apply><power/><ci>x</ci><cn>3</cn></apply>`,
			expr.Power{L: name("x"), R: num(3)}},
		{"quotient", `<apply><quotient/><ci>a</ci><ci>b</ci></apply>`,
			expr.Quotient{L: name("a"), R: name("b")}},
		{"remainder", `<apply><rem/><ci>a</ci><ci>b</ci></apply>`,
			expr.Remainder{L: name("a"), R: name("b")}},
		{"not", `<apply><not/><apply><eq/><ci>a</ci><ci>b</ci></apply></apply>`,
			expr.Not{Op: expr.Equal{L: name("a"), R: name("b")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.doc)
			assert.True(t, expr.Same(tt.want, got), "got %s", expr.Sprint(got))
		})
	}
}

func TestParseNaryFolding(t *testing.T) {
	got := mustParse(t, `<apply><plus/><ci>a</ci><ci>b</ci><ci>c</ci></apply>`)
	want := expr.Plus{L: expr.Plus{L: name("a"), R: name("b")}, R: name("c")}
	assert.True(t, expr.Same(want, got), "got %s", expr.Sprint(got))

	got = mustParse(t, `<apply><and/><ci>a</ci><ci>b</ci><ci>c</ci></apply>`)
	wantAnd := expr.And{L: expr.And{L: name("a"), R: name("b")}, R: name("c")}
	assert.True(t, expr.Same(wantAnd, got))
}

func TestParseUnaryPrefixForms(t *testing.T) {
	got := mustParse(t, `<apply><minus/><ci>a</ci></apply>`)
	assert.True(t, expr.Same(expr.PrefixMinus{Op: name("a")}, got))

	got = mustParse(t, `<apply><plus/><ci>a</ci></apply>`)
	assert.True(t, expr.Same(expr.PrefixPlus{Op: name("a")}, got))
}

func TestParseArityErrors(t *testing.T) {
	// Zero operands for any n-ary form.
	_, err := parseString(t, `<apply><times/></apply>`)
	var arity *ArityError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, "times", arity.Op)
	assert.Equal(t, "at least one operand", arity.Expected)
	assert.Contains(t, err.Error(), "at least one operand")

	// One operand for a form with no unary equivalent.
	_, err = parseString(t, `<apply><times/><ci>a</ci></apply>`)
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, "at least two operands", arity.Expected)
	assert.Equal(t, 1, arity.Actual)

	// Fixed-arity mismatch names expected vs actual.
	_, err = parseString(t, `<apply><power/><ci>a</ci></apply>`)
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, "exactly 2 operands", arity.Expected)
	assert.Equal(t, 1, arity.Actual)

	_, err = parseString(t, `<apply><sin/><ci>a</ci><ci>b</ci></apply>`)
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, "exactly 1 operand", arity.Expected)
}

func TestParseLogVariants(t *testing.T) {
	// Base 10, by value: collapses to Log10.
	got := mustParse(t, `<apply><log/><logbase><cn>10</cn></logbase><ci>x</ci></apply>`)
	assert.True(t, expr.Same(expr.Log10{Op: name("x")}, got), "got %s", expr.Sprint(got))

	// Any other base keeps the explicit binary form.
	got = mustParse(t, `<apply><log/><logbase><cn>2</cn></logbase><ci>x</ci></apply>`)
	assert.True(t, expr.Same(expr.Log{Op: name("x"), Base: num(2)}, got))

	// No base: natural log.
	got = mustParse(t, `<apply><log/><ci>x</ci></apply>`)
	assert.True(t, expr.Same(expr.Log{Op: name("x")}, got))

	got = mustParse(t, `<apply><ln/><ci>x</ci></apply>`)
	assert.True(t, expr.Same(expr.Log{Op: name("x")}, got))
}

func TestParseRoot(t *testing.T) {
	got := mustParse(t, `<apply><root/><ci>x</ci></apply>`)
	assert.True(t, expr.Same(expr.Sqrt{Op: name("x")}, got))

	got = mustParse(t, `<apply><root/><degree><cn>2</cn></degree><ci>x</ci></apply>`)
	assert.True(t, expr.Same(expr.Sqrt{Op: name("x")}, got))

	got = mustParse(t, `<apply><root/><degree><cn>3</cn></degree><ci>x</ci></apply>`)
	want := expr.Power{L: name("x"), R: expr.Divide{L: num(1), R: num(3)}}
	assert.True(t, expr.Same(want, got), "got %s", expr.Sprint(got))
}

func TestParseDerivative(t *testing.T) {
	got := mustParse(t, `<apply><diff/><bvar><ci>t</ci></bvar><ci>V</ci></apply>`)
	assert.True(t, expr.Same(expr.Derivative{Var: name("V")}, got))

	// Explicit first degree is accepted.
	got = mustParse(t,
		`<apply><diff/><bvar><ci>t</ci><degree><cn>1</cn></degree></bvar><ci>V</ci></apply>`)
	assert.True(t, expr.Same(expr.Derivative{Var: name("V")}, got))

	// Higher degrees are rejected.
	_, err := parseString(t,
		`<apply><diff/><bvar><ci>t</ci><degree><cn>2</cn></degree></bvar><ci>V</ci></apply>`)
	var structural *StructureError
	require.ErrorAs(t, err, &structural)
	assert.Contains(t, err.Error(), "first-order")

	// Derivatives of composite expressions are rejected.
	_, err = parseString(t,
		`<apply><diff/><bvar><ci>t</ci></bvar><apply><plus/><ci>V</ci><ci>W</ci></apply></apply>`)
	require.ErrorAs(t, err, &structural)
	assert.Contains(t, err.Error(), "composite")

	// Missing bvar is a structural error.
	_, err = parseString(t, `<apply><diff/><ci>V</ci></apply>`)
	require.ErrorAs(t, err, &structural)

	got = mustParse(t, `<apply><partialdiff/><bvar><ci>x</ci></bvar><ci>V</ci></apply>`)
	assert.True(t, expr.Same(expr.PartialDerivative{Var: name("V"), Wrt: name("x")}, got))
}

func TestParsePiecewise(t *testing.T) {
	doc := `<piecewise>
		<piece><cn>1</cn><apply><lt/><ci>V</ci><cn>0</cn></apply></piece>
		<piece><cn>2</cn><apply><gt/><ci>V</ci><cn>10</cn></apply></piece>
	</piecewise>`
	got := mustParse(t, doc)
	pw, ok := got.(expr.Piecewise)
	require.True(t, ok)
	require.Len(t, pw.Pieces, 2)

	// A missing default is auto-filled with zero.
	assert.True(t, expr.Same(num(0), pw.Default))
	assert.True(t, expr.Same(expr.Less{L: name("V"), R: num(0)}, pw.Pieces[0].Cond))
	assert.True(t, expr.Same(num(1), pw.Pieces[0].Value))
}

func TestParsePiecewiseStructureErrors(t *testing.T) {
	var structural *StructureError

	// More than one default.
	_, err := parseString(t, `<piecewise>
		<piece><cn>1</cn><apply><lt/><ci>V</ci><cn>0</cn></apply></piece>
		<otherwise><cn>2</cn></otherwise>
		<otherwise><cn>3</cn></otherwise>
	</piecewise>`)
	require.ErrorAs(t, err, &structural)
	assert.Contains(t, err.Error(), "multiple <otherwise>")

	// Wrong child count inside a piece.
	_, err = parseString(t, `<piecewise><piece><cn>1</cn></piece></piecewise>`)
	require.ErrorAs(t, err, &structural)

	// Unrecognized sibling tag.
	_, err = parseString(t, `<piecewise>
		<piece><cn>1</cn><apply><lt/><ci>V</ci><cn>0</cn></apply></piece>
		<ci>V</ci>
	</piecewise>`)
	require.ErrorAs(t, err, &structural)
}

func TestParseNumberEncodings(t *testing.T) {
	// Plain decimal rejects any base other than 10.
	_, err := parseString(t, `<cn base="8">17</cn>`)
	var literal *LiteralError
	require.ErrorAs(t, err, &literal)

	// Arbitrary-base integer.
	got := mustParse(t, `<cn type="integer" base="16">ff</cn>`)
	assert.True(t, expr.Same(num(255), got))

	// E-notation: mantissa and exponent as two fragments.
	got = mustParse(t, `<cn type="e-notation">1.2<sep/>-3</cn>`)
	assert.True(t, expr.Same(num(1.2e-3), got))

	// Rational: numerator and denominator as two fragments.
	got = mustParse(t, `<cn type="rational">1<sep/>4</cn>`)
	assert.True(t, expr.Same(num(0.25), got))

	// Unknown literal kind and empty text are hard errors.
	_, err = parseString(t, `<cn type="complex">1</cn>`)
	require.ErrorAs(t, err, &literal)
	_, err = parseString(t, `<cn></cn>`)
	require.ErrorAs(t, err, &literal)
}

func TestParseNumberUnits(t *testing.T) {
	got := mustParse(t, `<cn units="mV">-80</cn>`)
	n, ok := got.(expr.Number)
	require.True(t, ok)
	assert.Equal(t, -80.0, n.Value)
	assert.Equal(t, "mV", n.Units)
}

func TestParseConstants(t *testing.T) {
	got := mustParse(t, `<pi/>`)
	assert.True(t, expr.Same(num(math.Pi), got))

	// Euler's number is Exp(1), not a decimal approximation.
	got = mustParse(t, `<exponentiale/>`)
	assert.True(t, expr.Same(expr.Exp{Op: num(1)}, got))

	assert.True(t, expr.Same(num(1), mustParse(t, `<true/>`)))
	assert.True(t, expr.Same(num(0), mustParse(t, `<false/>`)))

	inf := mustParse(t, `<infinity/>`)
	assert.True(t, math.IsInf(inf.(expr.Number).Value, 1))
	nan := mustParse(t, `<notanumber/>`)
	assert.True(t, math.IsNaN(nan.(expr.Number).Value))
}

func TestParseDesugaring(t *testing.T) {
	// Reciprocal trig lowers to a division over the elementary form.
	got := mustParse(t, `<apply><csc/><ci>x</ci></apply>`)
	want := expr.Divide{L: num(1), R: expr.Sin{Op: name("x")}}
	assert.True(t, expr.Same(want, got), "got %s", expr.Sprint(got))

	got = mustParse(t, `<apply><arcsec/><ci>x</ci></apply>`)
	wantSec := expr.ACos{Op: expr.Divide{L: num(1), R: name("x")}}
	assert.True(t, expr.Same(wantSec, got))

	// Hyperbolics lower to exponential combinations.
	got = mustParse(t, `<apply><sinh/><ci>x</ci></apply>`)
	x := name("x")
	wantSinh := expr.Multiply{
		L: num(0.5),
		R: expr.Minus{L: expr.Exp{Op: x}, R: expr.Divide{L: num(1), R: expr.Exp{Op: x}}},
	}
	assert.True(t, expr.Same(wantSinh, got), "got %s", expr.Sprint(got))

	// Inverse hyperbolics lower to logarithmic forms.
	got = mustParse(t, `<apply><arctanh/><ci>x</ci></apply>`)
	wantATanh := expr.Multiply{L: num(0.5), R: expr.Log{
		Op: expr.Divide{L: expr.Plus{L: num(1), R: x}, R: expr.Minus{L: num(1), R: x}},
	}}
	assert.True(t, expr.Same(wantATanh, got), "got %s", expr.Sprint(got))
}

func TestParseUnrecognizedTags(t *testing.T) {
	var structural *StructureError

	_, err := parseString(t, `<mystery/>`)
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, "mystery", structural.Element.Tag)

	_, err = parseString(t, `<apply><mystery/><ci>a</ci></apply>`)
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, "mystery", structural.Element.Tag)

	_, err = parseString(t, `<apply></apply>`)
	require.ErrorAs(t, err, &structural)
}

func TestParseResolverHooks(t *testing.T) {
	el, err := DecodeString(`<apply><times/><ci>g</ci><cn units="mV">2</cn></apply>`)
	require.NoError(t, err)

	type variable struct{ id string }
	v := &variable{id: "g"}
	got, err := Parse(el, Options{
		ResolveName: func(name string) (expr.Expression, error) {
			require.Equal(t, "g", name)
			return expr.Name{Ref: v}, nil
		},
		MakeNumber: func(text, units string) (expr.Number, error) {
			require.Equal(t, "2", text)
			require.Equal(t, "mV", units)
			return expr.Number{Value: 2, Units: units}, nil
		},
	})
	require.NoError(t, err)
	mul, ok := got.(expr.Multiply)
	require.True(t, ok)
	assert.Same(t, v, mul.L.(expr.Name).Ref)
}

func TestParseNormalizesIdentifiers(t *testing.T) {
	// Decomposed e + combining acute normalizes to the composed form.
	el := NewText("ci", "V_é")
	got, err := Parse(el, Options{})
	require.NoError(t, err)
	assert.Equal(t, "V_é", got.(expr.Name).Ref)
}
