// Package cfamily renders expressions as C-like source text: ANSI C, C++,
// and the CUDA and OpenCL kernel dialects.
//
// All four dialects share one renderer and one precedence policy; they
// differ only in function naming, literal decoration, and the two kernel
// rules (squared powers become multiplications, and numeric operands are
// coerced explicitly where a condition is expected).
//
// Quotient and Remainder are always synthesized from floor, never mapped to
// the target's truncating / and %, so the round-toward-negative-infinity
// convention survives in every dialect.
package cfamily

import (
	"github.com/cardiosim/exprgen/internal/expr"
	"github.com/cardiosim/exprgen/internal/writer"
)

// Precision selects the floating width of a kernel dialect.
type Precision int

const (
	// DoublePrecision uses double math functions and plain literals.
	DoublePrecision Precision = iota
	// SinglePrecision uses float math functions and f-suffixed literals.
	SinglePrecision
)

// KernelOptions configures the CUDA and OpenCL dialects.
type KernelOptions struct {
	Precision Precision

	// NativeMath selects the fast, lower-accuracy transcendental
	// variants (__sinf on CUDA, native_sin on OpenCL) over the library
	// versions.
	NativeMath bool
}

// Writer renders expressions for one C-family dialect.
type Writer struct {
	target string
	cfg    writer.Config
	funcs  map[string]string
	single bool
	gpu    bool
}

// mathFuncs are the generic function keys shared by all dialects.
var mathFuncs = []string{
	"sqrt", "exp", "log", "log10",
	"sin", "cos", "tan", "asin", "acos", "atan",
	"floor", "ceil", "fabs", "pow",
}

// cudaNative lists the functions with __-intrinsic variants. CUDA only
// provides them in single precision.
var cudaNative = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"exp": true, "log": true, "log10": true, "pow": true,
}

// openclNative lists the functions with native_ variants in OpenCL.
var openclNative = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"exp": true, "log": true, "log10": true, "sqrt": true,
}

// NewC creates a writer for ANSI C.
func NewC(cfg writer.Config) *Writer {
	w := &Writer{target: "c", cfg: cfg, funcs: make(map[string]string)}
	for _, f := range mathFuncs {
		w.funcs[f] = f
	}
	w.fillDefaults()
	return w
}

// NewCPP creates a writer for C++, qualifying every math function with the
// std namespace.
func NewCPP(cfg writer.Config) *Writer {
	w := &Writer{target: "c++", cfg: cfg, funcs: make(map[string]string)}
	for _, f := range mathFuncs {
		w.funcs[f] = "std::" + f
	}
	w.fillDefaults()
	return w
}

// NewCUDA creates a writer for CUDA kernel code. Single precision selects
// the f-suffixed functions and literal markers; native math additionally
// selects the __ intrinsics where CUDA provides them (single precision
// only).
func NewCUDA(cfg writer.Config, opts KernelOptions) *Writer {
	w := &Writer{
		target: "cuda",
		cfg:    cfg,
		funcs:  make(map[string]string),
		single: opts.Precision == SinglePrecision,
		gpu:    true,
	}
	for _, f := range mathFuncs {
		name := f
		if w.single {
			name = f + "f"
			if opts.NativeMath && cudaNative[f] {
				name = "__" + f + "f"
			}
		}
		w.funcs[f] = name
	}
	w.fillDefaults()
	return w
}

// NewOpenCL creates a writer for OpenCL kernel code. OpenCL overloads the
// library functions per width, so precision only decorates literals; native
// math selects the native_ variants.
func NewOpenCL(cfg writer.Config, opts KernelOptions) *Writer {
	w := &Writer{
		target: "opencl",
		cfg:    cfg,
		funcs:  make(map[string]string),
		single: opts.Precision == SinglePrecision,
		gpu:    true,
	}
	for _, f := range mathFuncs {
		name := f
		if opts.NativeMath && openclNative[f] {
			name = "native_" + f
		}
		w.funcs[f] = name
	}
	w.fillDefaults()
	return w
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

// Target returns the dialect name.
func (w *Writer) Target() string {
	return w.target
}

// Eq renders lhs = rhs.
func (w *Writer) Eq(lhs, rhs expr.Expression) (string, error) {
	return writer.Equation(w, lhs, rhs)
}
