package core

import (
	"errors"
	"fmt"
)

// StructuralError reports a required node missing from a page.
// It aborts the page and, during assembly, the whole issue.
type StructuralError struct {
	Page  string // "index" or "article"
	Field string
	URL   string
}

func (e *StructuralError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s page %s: required %s not found", e.Page, e.URL, e.Field)
	}
	return fmt.Sprintf("%s page: required %s not found", e.Page, e.Field)
}

// IsStructural reports whether err wraps a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// FetchError reports that a source page could not be retrieved.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
