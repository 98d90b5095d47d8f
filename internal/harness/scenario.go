package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a render conformance scenario: a set of expression
// fixtures rendered against every target of one profile.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden file
	// name.
	Name string `yaml:"name"`

	// Description explains what this scenario covers.
	Description string `yaml:"description"`

	// Profile is the path to the target profile document, relative to
	// the scenario file.
	Profile string `yaml:"profile"`

	// Expressions lists the fixtures to render.
	Expressions []ExpressionRef `yaml:"expressions"`
}

// ExpressionRef names one MathML fixture.
type ExpressionRef struct {
	// Name labels the expression in the report.
	Name string `yaml:"name"`

	// MathML is the fixture path, relative to the scenario file.
	MathML string `yaml:"mathml"`
}

// LoadScenario reads and parses a scenario YAML file. Relative fixture and
// profile paths are resolved against the scenario file's directory. Unknown
// fields are rejected, so a typo fails loudly instead of silently skipping
// a fixture.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	base := filepath.Dir(path)
	if s.Profile != "" && !filepath.IsAbs(s.Profile) {
		s.Profile = filepath.Join(base, s.Profile)
	}
	for i, ref := range s.Expressions {
		if ref.MathML != "" && !filepath.IsAbs(ref.MathML) {
			s.Expressions[i].MathML = filepath.Join(base, ref.MathML)
		}
	}

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Profile == "" {
		return fmt.Errorf("profile is required")
	}
	if _, err := os.Stat(s.Profile); os.IsNotExist(err) {
		return fmt.Errorf("profile not found: %s", s.Profile)
	}
	if len(s.Expressions) == 0 {
		return fmt.Errorf("expressions list is required and must be non-empty")
	}
	for i, ref := range s.Expressions {
		if ref.Name == "" {
			return fmt.Errorf("expressions[%d]: name is required", i)
		}
		if ref.MathML == "" {
			return fmt.Errorf("expressions[%d]: mathml is required", i)
		}
		if _, err := os.Stat(ref.MathML); os.IsNotExist(err) {
			return fmt.Errorf("expressions[%d]: fixture not found: %s", i, ref.MathML)
		}
	}
	return nil
}
