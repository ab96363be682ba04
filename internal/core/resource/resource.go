// Package resource defines the study resource record.
package resource

import (
	"strings"

	"github.com/studydesk/studydesk/internal/core/query"
)

// Type classifies a resource.
type Type string

const (
	TypeLink Type = "link"
	TypePDF  Type = "pdf"
)

// Collection is the persistence key for the resource store.
const Collection = "resources"

// Resource is an uploaded study material. For TypeLink the URL field
// holds an absolute URL; for TypePDF it holds a file name. Resources
// are created and deleted but never updated.
type Resource struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Type       Type     `json:"type"`
	URL        string   `json:"url"`
	Tags       []string `json:"tags"`
	UploadedAt string   `json:"uploaded_at"`
}

// Key returns the resource's unique id.
func (r Resource) Key() string { return r.ID }

// ValidType reports whether t is one of the closed type values.
func ValidType(t Type) bool {
	switch t {
	case TypeLink, TypePDF:
		return true
	}
	return false
}

// ParseTags splits a comma-separated tag string into a clean tag list:
// whitespace trimmed, empty entries dropped, insertion order preserved.
func ParseTags(csv string) []string {
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// QuerySpec exposes resources to the query engine: free text matches
// the title and any single tag.
func QuerySpec() query.Spec[Resource] {
	return query.Spec[Resource]{
		Text: func(r Resource) []string {
			return append([]string{r.Title}, r.Tags...)
		},
	}
}
