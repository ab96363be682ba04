// Package query implements stateless search and filtering over
// collection snapshots. Filtering is a pure function: it never mutates
// its input, never re-sorts, and calling it twice with identical inputs
// yields identical, independent output slices.
package query

import "strings"

// All is the sentinel value for a categorical filter meaning
// "no constraint on that field".
const All = "all"

// Params holds one filter invocation's criteria.
type Params struct {
	// Text is matched case-insensitively as a substring against the
	// spec's text candidates. Empty means no text constraint.
	Text string

	// Fields maps categorical filter names to required values. A value
	// of "" or All leaves that field unconstrained. All constraints
	// combine with the text match by logical AND.
	Fields map[string]string
}

// Spec describes how records of type R expose their searchable content.
type Spec[R any] struct {
	// Text extracts the free-text candidates for a record; a match
	// against any single candidate counts.
	Text func(R) []string

	// Fields maps categorical filter names to value extractors.
	Fields map[string]func(R) string
}

// Filter returns the subsequence of records matching p, in input order.
func Filter[R any](records []R, spec Spec[R], p Params) []R {
	out := make([]R, 0, len(records))
	for _, r := range records {
		if Matches(r, spec, p) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record satisfies the params.
func Matches[R any](r R, spec Spec[R], p Params) bool {
	if text := strings.ToLower(p.Text); text != "" {
		if spec.Text == nil {
			return false
		}
		found := false
		for _, candidate := range spec.Text(r) {
			if strings.Contains(strings.ToLower(candidate), text) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for name, want := range p.Fields {
		if want == "" || want == All {
			continue
		}
		extract, ok := spec.Fields[name]
		if !ok || extract(r) != want {
			return false
		}
	}

	return true
}
