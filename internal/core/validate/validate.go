// Package validate provides shared validation functions. Validators run
// before any store mutation; a failing field never reaches a store.
package validate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"
)

// TaskTitle validates a task title is non-empty after trimming whitespace.
func TaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// TaskTitleField returns a criterio validator for task titles.
func TaskTitleField(field, title string) error {
	return criterio.Run(field, title, TaskTitle)
}

// RoomName validates a room name is non-empty after trimming whitespace.
func RoomName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("room name is required")
	}
	return nil
}

// RoomNameField returns a criterio validator for room names.
func RoomNameField(field, name string) error {
	return criterio.Run(field, name, RoomName)
}

// RoomID validates a room id is non-empty after trimming whitespace.
func RoomID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("room id is required")
	}
	return nil
}

// RoomIDField returns a criterio validator for room ids.
func RoomIDField(field, id string) error {
	return criterio.Run(field, id, RoomID)
}

// ResourceTitle validates a resource title is non-empty after trimming.
func ResourceTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// ResourceTitleField returns a criterio validator for resource titles.
func ResourceTitleField(field, title string) error {
	return criterio.Run(field, title, ResourceTitle)
}

// LinkURL validates a syntactically valid absolute URL.
func LinkURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("URL is required")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be a valid URL")
	}
	return nil
}

// LinkURLField returns a criterio validator for link URLs.
func LinkURLField(field, raw string) error {
	return criterio.Run(field, raw, LinkURL)
}

// FileName validates a non-empty file name for uploaded documents.
func FileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("file name is required")
	}
	return nil
}

// FileNameField returns a criterio validator for file names.
func FileNameField(field, name string) error {
	return criterio.Run(field, name, FileName)
}
