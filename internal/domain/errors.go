package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound reports that the targeted record does not exist. For
	// approve/delete this is a benign outcome, not a hard failure.
	ErrNotFound = errors.New("record not found")

	// ErrStorage wraps persistence failures. Surfaced to callers as a
	// generic failure; never retried inside the service.
	ErrStorage = errors.New("storage failure")

	// ErrUpload wraps a failed upload-store save during submission.
	// Release failures on delete are swallowed, never wrapped in this.
	ErrUpload = errors.New("upload failure")
)

// ValidationError carries field-level reasons for a rejected input.
// It is always produced before any storage mutation is attempted.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, reason string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, seen := e.Fields[field]; !seen {
		e.Fields[field] = reason
	}
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, field+" "+reason)
	}
	sort.Strings(parts)
	return fmt.Sprintf("invalid input: %s", strings.Join(parts, "; "))
}
