package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Title string
	Body  string
	Tags  []string
	Kind  string
}

func docSpec() Spec[doc] {
	return Spec[doc]{
		Text: func(d doc) []string {
			return append([]string{d.Title, d.Body}, d.Tags...)
		},
		Fields: map[string]func(doc) string{
			"kind": func(d doc) string { return d.Kind },
		},
	}
}

func sampleDocs() []doc {
	return []doc{
		{Title: "React Documentation", Body: "official docs", Tags: []string{"react", "frontend"}, Kind: "link"},
		{Title: "Data Structures Notes", Body: "chapter summaries", Tags: []string{"dsa", "notes"}, Kind: "pdf"},
		{Title: "JavaScript Cheat Sheet", Body: "", Tags: []string{"javascript", "reference"}, Kind: "pdf"},
	}
}

func TestFilter_identity(t *testing.T) {
	docs := sampleDocs()

	got := Filter(docs, docSpec(), Params{Text: "", Fields: map[string]string{"kind": All}})

	assert.Equal(t, docs, got, "empty query returns the full collection, order preserved")
}

func TestFilter_idempotent(t *testing.T) {
	docs := sampleDocs()
	p := Params{Text: "notes"}

	once := Filter(docs, docSpec(), p)
	twice := Filter(once, docSpec(), p)

	assert.Equal(t, once, twice)
}

func TestFilter_case_insensitive_substring(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"lowercase against title", "react", []string{"React Documentation"}},
		{"uppercase against title", "REACT", []string{"React Documentation"}},
		{"substring of body", "chapter", []string{"Data Structures Notes"}},
		{"matches any single tag", "reference", []string{"JavaScript Cheat Sheet"}},
		{"no match", "golang", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleDocs(), docSpec(), Params{Text: tt.text})

			titles := make([]string, 0, len(got))
			for _, d := range got {
				titles = append(titles, d.Title)
			}
			if tt.want == nil {
				assert.Empty(t, titles)
				return
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestFilter_combines_text_and_fields_with_and(t *testing.T) {
	docs := sampleDocs()

	// "notes" alone matches two records ("Data Structures Notes" by
	// title, and the "notes" tag); adding kind=pdf narrows via AND.
	got := Filter(docs, docSpec(), Params{
		Text:   "s",
		Fields: map[string]string{"kind": "pdf"},
	})

	require.Len(t, got, 2)
	for _, d := range got {
		assert.Equal(t, "pdf", d.Kind)
	}
}

func TestFilter_unknown_field_never_matches(t *testing.T) {
	got := Filter(sampleDocs(), docSpec(), Params{
		Fields: map[string]string{"owner": "alice"},
	})
	assert.Empty(t, got, "constraining a field the spec does not expose matches nothing")
}

func TestFilter_output_is_independent(t *testing.T) {
	docs := sampleDocs()

	got := Filter(docs, docSpec(), Params{})
	got[0].Title = "mutated"

	assert.Equal(t, "React Documentation", docs[0].Title, "filter output must not alias the input")
}
