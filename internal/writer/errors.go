package writer

import (
	"fmt"

	"github.com/cardiosim/exprgen/internal/expr"
)

// UnsupportedError reports that a writer encountered an IR node kind its
// target cannot express. It is always fatal to the render call that raised
// it; no writer degrades to partial output.
type UnsupportedError struct {
	// Target is the backend name, e.g. "cuda" or "latex".
	Target string
	// Kind is the IR node kind, e.g. "Piecewise".
	Kind string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: unsupported expression kind %s", e.Target, e.Kind)
}

// Unsupported builds an UnsupportedError for the given node.
func Unsupported(target string, e expr.Expression) error {
	return &UnsupportedError{Target: target, Kind: expr.KindOf(e)}
}

// MissingConfigError reports that a writer was constructed or used without
// a configuration value its target requires.
type MissingConfigError struct {
	// Target is the backend name.
	Target string
	// Field is the missing Config field, e.g. "ConditionFunc".
	Field string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("%s: missing required configuration %s", e.Target, e.Field)
}
