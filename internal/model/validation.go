package model

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidateFields checks user-entered task fields at the add/update boundary.
// Title and due date are expected to be trimmed by the caller.
func ValidateFields(title string, category Category, priority Priority, dueDate string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "please enter a task title"}
	}
	fields := []struct {
		name  string
		value string
	}{
		{"title", title},
		{"category", string(category)},
		{"priority", string(priority)},
		{"due date", dueDate},
	}
	for _, f := range fields {
		if strings.Contains(f.value, FieldDelimiter) {
			return &ValidationError{Field: f.name, Message: fmt.Sprintf("must not contain %q", FieldDelimiter)}
		}
		if strings.ContainsAny(f.value, "\r\n") {
			return &ValidationError{Field: f.name, Message: "must be a single line"}
		}
	}
	if dueDate != "" {
		if _, err := ParseDueDate(dueDate); err != nil {
			return &ValidationError{Field: "due date", Message: "invalid date format, use MM/DD/YYYY"}
		}
	}
	return nil
}
