// Package harness runs cross-backend render conformance scenarios.
//
// A scenario is a YAML document naming a target profile and a list of
// MathML expression fixtures. Running it parses every fixture, renders it
// with every target the profile configures, and collects the output in a
// deterministic report. Golden files pin the report, so a change to any
// backend's output surfaces as a diff against every expression that
// exercises it.
package harness
