// Package profile loads and validates target profiles: named sets of render
// targets with per-target writer options, written in CUE. The schema lives
// next to the code and is embedded; a profile document unifies against it,
// so type and enum violations surface with CUE positions before any field
// is decoded.
package profile

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource string

// Profile is a validated set of render targets.
type Profile struct {
	Name    string
	Targets map[string]Target
}

// Target is one configured render target.
type Target struct {
	// Backend is the writer name, e.g. "cuda" or "mathml-content".
	Backend string
	// Precision is "double", "single" or empty. Kernel dialects only.
	Precision string
	// NativeMath selects fast transcendental variants. Kernel dialects
	// only.
	NativeMath bool
	// ConditionFunc names the ternary-emulation function. Required for
	// matlab and stan.
	ConditionFunc string
	// TimeVariable names the derivative bound variable. Typeset and
	// markup backends only.
	TimeVariable string
}

// Error is a profile validation error with CUE source position.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and parses a profile document from a file.
func Load(path string) (*Profile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(src), path)
}

// Parse compiles a profile document, unifies it with the embedded schema
// and decodes the result. The filename is used in error positions only.
func Parse(src, filename string) (*Profile, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	doc := ctx.CompileString(src, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	root := unified.LookupPath(cue.ParsePath("profile"))
	if !root.Exists() {
		return nil, &Error{Field: "profile", Message: "profile section is required"}
	}

	p := &Profile{Targets: make(map[string]Target)}
	name, err := root.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	p.Name = name

	targetsVal := root.LookupPath(cue.ParsePath("targets"))
	if targetsVal.Exists() {
		iter, err := targetsVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			label := iter.Label()
			t, err := decodeTarget(iter.Value(), label)
			if err != nil {
				return nil, err
			}
			p.Targets[label] = t
		}
	}
	if len(p.Targets) == 0 {
		return nil, &Error{
			Field:   "targets",
			Message: "at least one target is required",
			Pos:     root.Pos(),
		}
	}
	return p, nil
}

func decodeTarget(v cue.Value, label string) (Target, error) {
	var t Target

	backend, err := v.LookupPath(cue.ParsePath("backend")).String()
	if err != nil {
		return t, formatCUEError(err)
	}
	t.Backend = backend

	if pv := v.LookupPath(cue.ParsePath("precision")); pv.Exists() {
		if t.Precision, err = pv.String(); err != nil {
			return t, formatCUEError(err)
		}
	}
	if nv := v.LookupPath(cue.ParsePath("native_math")); nv.Exists() {
		if t.NativeMath, err = nv.Bool(); err != nil {
			return t, formatCUEError(err)
		}
	}
	if cv := v.LookupPath(cue.ParsePath("condition_function")); cv.Exists() {
		if t.ConditionFunc, err = cv.String(); err != nil {
			return t, formatCUEError(err)
		}
	}
	if tv := v.LookupPath(cue.ParsePath("time_variable")); tv.Exists() {
		if t.TimeVariable, err = tv.String(); err != nil {
			return t, formatCUEError(err)
		}
	}
	return t, t.check(label, v.Pos())
}

// check enforces the cross-field rules the schema's per-field types cannot
// express.
func (t Target) check(label string, pos token.Pos) error {
	field := func(name string) string { return "targets." + label + "." + name }
	kernel := t.Backend == "cuda" || t.Backend == "opencl"
	markup := t.Backend == "latex" ||
		t.Backend == "mathml-content" || t.Backend == "mathml-presentation"

	if !kernel {
		if t.Precision != "" {
			return &Error{
				Field:   field("precision"),
				Message: fmt.Sprintf("precision does not apply to backend %q", t.Backend),
				Pos:     pos,
			}
		}
		if t.NativeMath {
			return &Error{
				Field:   field("native_math"),
				Message: fmt.Sprintf("native_math does not apply to backend %q", t.Backend),
				Pos:     pos,
			}
		}
	}
	if t.TimeVariable != "" && !markup {
		return &Error{
			Field:   field("time_variable"),
			Message: fmt.Sprintf("time_variable does not apply to backend %q", t.Backend),
			Pos:     pos,
		}
	}
	if t.ConditionFunc == "" && (t.Backend == "matlab" || t.Backend == "stan") {
		return &Error{
			Field:   field("condition_function"),
			Message: fmt.Sprintf("backend %q requires condition_function", t.Backend),
			Pos:     pos,
		}
	}
	return nil
}

// formatCUEError extracts the first position-bearing error from a CUE error
// list.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 {
		return &Error{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}
