package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studydesk/studydesk/internal/core/query"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want []string
	}{
		{"simple", "react,frontend", []string{"react", "frontend"}},
		{"trims whitespace", " react , frontend ", []string{"react", "frontend"}},
		{"drops empties", "react,,frontend,", []string{"react", "frontend"}},
		{"empty input", "", []string{}},
		{"preserves insertion order", "z,a,m", []string{"z", "a", "m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.csv))
		})
	}
}

func TestValidType(t *testing.T) {
	assert.True(t, ValidType(TypeLink))
	assert.True(t, ValidType(TypePDF))
	assert.False(t, ValidType("video"))
	assert.False(t, ValidType(""))
}

func TestQuerySpec_matches_title_and_tags(t *testing.T) {
	resources := Seed()
	spec := QuerySpec()

	got := query.Filter(resources, spec, query.Params{Text: "cheat"})
	assert.Len(t, got, 1)
	assert.Equal(t, "JavaScript Cheat Sheet", got[0].Title)

	// A match against any single tag counts.
	got = query.Filter(resources, spec, query.Params{Text: "frontend"})
	assert.Len(t, got, 2)

	got = query.Filter(resources, spec, query.Params{Text: ""})
	assert.Equal(t, resources, got)
}
