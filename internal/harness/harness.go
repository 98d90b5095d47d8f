package harness

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cardiosim/exprgen/internal/expr"
	"github.com/cardiosim/exprgen/internal/mathml"
	"github.com/cardiosim/exprgen/internal/profile"
	"github.com/cardiosim/exprgen/internal/writer"
)

// Render is one expression rendered for one target.
type Render struct {
	Expression string
	Target     string
	Backend    string
	Output     string
}

// Result collects every render of a scenario, ordered by fixture, then by
// target label.
type Result struct {
	Scenario *Scenario
	Profile  *profile.Profile
	Renders  []Render
}

// Run executes a scenario: the profile is loaded, every fixture parsed, and
// every fixture rendered with every configured target. The first failure
// aborts the run; partial reports are never produced.
func Run(s *Scenario) (*Result, error) {
	p, err := profile.Load(s.Profile)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	labels := make([]string, 0, len(p.Targets))
	for label := range p.Targets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	writers := make(map[string]writer.Writer, len(labels))
	for _, label := range labels {
		w, err := p.Targets[label].NewWriter()
		if err != nil {
			return nil, fmt.Errorf("scenario %s: target %s: %w", s.Name, label, err)
		}
		writers[label] = w
	}

	result := &Result{Scenario: s, Profile: p}
	for _, ref := range s.Expressions {
		e, err := loadExpression(ref.MathML)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: expression %s: %w", s.Name, ref.Name, err)
		}
		for _, label := range labels {
			out, err := writers[label].Ex(e)
			if err != nil {
				return nil, fmt.Errorf("scenario %s: expression %s: target %s: %w",
					s.Name, ref.Name, label, err)
			}
			result.Renders = append(result.Renders, Render{
				Expression: ref.Name,
				Target:     label,
				Backend:    p.Targets[label].Backend,
				Output:     out,
			})
		}
	}
	return result, nil
}

func loadExpression(path string) (expr.Expression, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	el, err := mathml.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return mathml.Parse(el, mathml.Options{})
}

// Report renders the result as the deterministic text form pinned by golden
// files: a header, then one block per expression with one line per target.
func (r *Result) Report() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Scenario.Name)
	fmt.Fprintf(&b, "profile: %s\n", r.Profile.Name)

	current := ""
	for _, rd := range r.Renders {
		if rd.Expression != current {
			current = rd.Expression
			fmt.Fprintf(&b, "\n== %s\n", current)
		}
		fmt.Fprintf(&b, "%s: %s\n", rd.Target, rd.Output)
	}
	return []byte(b.String())
}
