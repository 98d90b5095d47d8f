// Package dynamic renders expressions for the dynamic and numeric
// scripting targets: Python, NumPy, MATLAB and Stan.
//
// The family inverts one C-family rule on purpose: Quotient and Remainder
// map to the target's native floor-division and modulo wherever those
// already round toward negative infinity (Python's // and %, MATLAB's mod).
// Only Stan's truncating fmod forces the synthesized form.
//
// Power is an operator here and right-associates in Python and Stan, while
// the IR's Power is left-associative; the shared precedence oracle brackets
// a Power base that is itself a Power, which forces left-to-right
// evaluation in these targets.
package dynamic

import (
	"github.com/cardiosim/exprgen/internal/expr"
	"github.com/cardiosim/exprgen/internal/writer"
)

// Writer renders expressions for one dynamic-family target.
type Writer struct {
	target string
	cfg    writer.Config
	funcs  map[string]string

	powerOp  string
	floorDiv string // native floor-division operator, "" synthesizes floor()
	modOp    string // native floor-modulo operator
	modFunc  string // floor-modulo function name (MATLAB mod)
	andOp    string
	orOp     string
	notFmt   string
	neqOp    string

	// inlineIf renders the target's inline conditional; nil when the
	// target has none.
	inlineIf func(cond, then, els string) string

	// useSelect renders conditionals as a vectorized select over the
	// collected condition and value lists (NumPy).
	useSelect bool

	// logTwoArg emits log(x, base) instead of log(x)/log(base).
	logTwoArg bool
}

func pythonFuncs(prefix string) map[string]string {
	m := make(map[string]string)
	for _, f := range []string{
		"sqrt", "exp", "log", "log10",
		"sin", "cos", "tan", "asin", "acos", "atan",
		"floor", "ceil",
	} {
		m[f] = prefix + f
	}
	return m
}

// NewPython creates a writer for plain Python, routing functions through
// the math module.
func NewPython(cfg writer.Config) *Writer {
	w := &Writer{
		target:   "python",
		cfg:      cfg,
		funcs:    pythonFuncs("math."),
		powerOp:  " ** ",
		floorDiv: " // ",
		modOp:    " % ",
		andOp:    " and ",
		orOp:     " or ",
		notFmt:   "not (%s)",
		neqOp:    " != ",
		inlineIf: func(cond, then, els string) string {
			return "(" + then + " if " + cond + " else " + els + ")"
		},
		logTwoArg: true,
	}
	w.funcs["abs"] = "abs"
	w.fillDefaults()
	return w
}

// NewNumPy creates a writer for array-oriented NumPy code. Every function
// is module-qualified, logic is element-wise, and conditionals render as a
// vectorized numpy.select over the full condition and value lists.
func NewNumPy(cfg writer.Config) *Writer {
	w := &Writer{
		target:    "numpy",
		cfg:       cfg,
		funcs:     pythonFuncs("numpy."),
		powerOp:   " ** ",
		floorDiv:  " // ",
		modOp:     " % ",
		neqOp:     " != ",
		useSelect: true,
	}
	w.funcs["asin"] = "numpy.arcsin"
	w.funcs["acos"] = "numpy.arccos"
	w.funcs["atan"] = "numpy.arctan"
	w.funcs["abs"] = "numpy.abs"
	w.funcs["logical_and"] = "numpy.logical_and"
	w.funcs["logical_or"] = "numpy.logical_or"
	w.funcs["logical_not"] = "numpy.logical_not"
	w.fillDefaults()
	return w
}

// NewMATLAB creates a writer for MATLAB/Octave code. MATLAB has no inline
// conditional, so a ternary-emulation function must be configured; its
// absence is a construction-time error, not a first-render surprise.
func NewMATLAB(cfg writer.Config) (*Writer, error) {
	if cfg.ConditionFunc == "" {
		return nil, &writer.MissingConfigError{Target: "matlab", Field: "ConditionFunc"}
	}
	w := &Writer{
		target:  "matlab",
		cfg:     cfg,
		funcs:   make(map[string]string),
		powerOp: " ^ ",
		modFunc: "mod",
		andOp:   " & ",
		orOp:    " | ",
		notFmt:  "~(%s)",
		neqOp:   " ~= ",
	}
	for _, f := range []string{
		"sqrt", "exp", "log", "log10",
		"sin", "cos", "tan", "asin", "acos", "atan",
		"floor", "ceil", "abs",
	} {
		w.funcs[f] = f
	}
	w.fillDefaults()
	return w, nil
}

// NewStan creates a writer for the Stan probabilistic modeling language.
// Stan has no inline conditional either, and its fmod truncates, so the
// remainder is synthesized like in the C family.
func NewStan(cfg writer.Config) (*Writer, error) {
	if cfg.ConditionFunc == "" {
		return nil, &writer.MissingConfigError{Target: "stan", Field: "ConditionFunc"}
	}
	w := &Writer{
		target:  "stan",
		cfg:     cfg,
		funcs:   make(map[string]string),
		powerOp: " ^ ",
		andOp:   " && ",
		orOp:    " || ",
		notFmt:  "!(%s)",
		neqOp:   " != ",
	}
	for _, f := range []string{
		"sqrt", "exp", "log", "log10",
		"sin", "cos", "tan", "asin", "acos", "atan",
		"floor", "ceil",
	} {
		w.funcs[f] = f
	}
	w.funcs["abs"] = "fabs"
	w.fillDefaults()
	return w, nil
}

func (w *Writer) fillDefaults() {
	if w.cfg.Name == nil {
		w.cfg.Name = writer.DefaultName
	}
	if w.cfg.FormatNumber == nil {
		w.cfg.FormatNumber = func(n expr.Number) string {
			return writer.FormatFloat(n.Value)
		}
	}
}

// Target returns the target name.
func (w *Writer) Target() string {
	return w.target
}

// Eq renders lhs = rhs.
func (w *Writer) Eq(lhs, rhs expr.Expression) (string, error) {
	return writer.Equation(w, lhs, rhs)
}
