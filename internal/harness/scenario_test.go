package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarioResolvesRelativePaths(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "membrane.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "membrane", s.Name)
	assert.Equal(t, filepath.Join("testdata", "profiles", "all-targets.cue"), s.Profile)
	require.Len(t, s.Expressions, 2)
	assert.Equal(t, filepath.Join("testdata", "expressions", "ina.xml"), s.Expressions[0].MathML)
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: typo
description: has a typo'd key
profile: nowhere.cue
expression:
  - name: x
    mathml: x.xml
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scenario")
}

func TestLoadScenarioValidation(t *testing.T) {
	dir := t.TempDir()

	// A real profile and fixture so only the field under test fails.
	profilePath := filepath.Join(dir, "p.cue")
	require.NoError(t, os.WriteFile(profilePath,
		[]byte(`profile: { name: "p", targets: c: backend: "c" }`), 0o644))
	fixturePath := filepath.Join(dir, "e.xml")
	require.NoError(t, os.WriteFile(fixturePath,
		[]byte(`<math><ci>x</ci></math>`), 0o644))

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing name",
			"description: d\nprofile: p.cue\nexpressions:\n  - name: e\n    mathml: e.xml\n",
			"name is required",
		},
		{
			"missing description",
			"name: n\nprofile: p.cue\nexpressions:\n  - name: e\n    mathml: e.xml\n",
			"description is required",
		},
		{
			"missing profile",
			"name: n\ndescription: d\nexpressions:\n  - name: e\n    mathml: e.xml\n",
			"profile is required",
		},
		{
			"profile not found",
			"name: n\ndescription: d\nprofile: missing.cue\nexpressions:\n  - name: e\n    mathml: e.xml\n",
			"profile not found",
		},
		{
			"no expressions",
			"name: n\ndescription: d\nprofile: p.cue\n",
			"expressions list is required",
		},
		{
			"fixture not found",
			"name: n\ndescription: d\nprofile: p.cue\nexpressions:\n  - name: e\n    mathml: missing.xml\n",
			"fixture not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, dir, tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunFailsOnMisconfiguredTarget(t *testing.T) {
	dir := t.TempDir()

	// matlab without condition_function fails profile validation, which
	// aborts the run before any rendering.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "p.cue"),
		[]byte(`profile: { name: "p", targets: m: backend: "matlab" }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "e.xml"),
		[]byte(`<math><ci>x</ci></math>`), 0o644))
	path := writeScenario(t, dir,
		"name: n\ndescription: d\nprofile: p.cue\nexpressions:\n  - name: e\n    mathml: e.xml\n")

	s, err := LoadScenario(path)
	require.NoError(t, err)

	_, err = Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "condition_function")
}
