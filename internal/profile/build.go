package profile

import (
	"fmt"

	"github.com/cardiosim/exprgen/internal/writer"
	"github.com/cardiosim/exprgen/internal/writer/cfamily"
	"github.com/cardiosim/exprgen/internal/writer/dynamic"
	"github.com/cardiosim/exprgen/internal/writer/markup"
)

// NewWriter constructs the configured writer for a target. Backends whose
// constructors enforce required configuration (matlab, stan) surface their
// own MissingConfigError; the profile check catches the same omission
// earlier with a source position when the target came from a document.
func (t Target) NewWriter() (writer.Writer, error) {
	cfg := writer.Config{ConditionFunc: t.ConditionFunc}

	switch t.Backend {
	case "c":
		return cfamily.NewC(cfg), nil
	case "cpp":
		return cfamily.NewCPP(cfg), nil
	case "cuda":
		return cfamily.NewCUDA(cfg, t.kernelOptions()), nil
	case "opencl":
		return cfamily.NewOpenCL(cfg, t.kernelOptions()), nil
	case "python":
		return dynamic.NewPython(cfg), nil
	case "numpy":
		return dynamic.NewNumPy(cfg), nil
	case "matlab":
		return dynamic.NewMATLAB(cfg)
	case "stan":
		return dynamic.NewStan(cfg)
	case "latex":
		return markup.NewLatex(cfg, t.TimeVariable), nil
	case "mathml-content":
		return markup.NewMathML(cfg, markup.Content, t.TimeVariable), nil
	case "mathml-presentation":
		return markup.NewMathML(cfg, markup.Presentation, t.TimeVariable), nil
	default:
		return nil, &Error{
			Field:   "backend",
			Message: fmt.Sprintf("unknown backend %q", t.Backend),
		}
	}
}

func (t Target) kernelOptions() cfamily.KernelOptions {
	opts := cfamily.KernelOptions{NativeMath: t.NativeMath}
	if t.Precision == "single" {
		opts.Precision = cfamily.SinglePrecision
	}
	return opts
}

// Backends lists every backend name NewWriter accepts, in a stable order.
func Backends() []string {
	return []string{
		"c", "cpp", "cuda", "opencl",
		"python", "numpy", "matlab", "stan",
		"latex", "mathml-content", "mathml-presentation",
	}
}
