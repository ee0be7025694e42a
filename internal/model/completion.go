package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCompletion = errors.New("model: invalid completion filter")

// Completion narrows a listing by the completed flag.
type Completion string

const (
	CompletionAll       Completion = "All"
	CompletionCompleted Completion = "Completed"
	CompletionPending   Completion = "Pending"
)

func (c Completion) IsValid() bool {
	switch c {
	case CompletionAll, CompletionCompleted, CompletionPending:
		return true
	default:
		return false
	}
}

func (c Completion) Keep(t Task) bool {
	switch c {
	case CompletionCompleted:
		return t.Completed
	case CompletionPending:
		return !t.Completed
	default:
		return true
	}
}

func (c Completion) Next() Completion {
	switch c {
	case CompletionAll:
		return CompletionCompleted
	case CompletionCompleted:
		return CompletionPending
	default:
		return CompletionAll
	}
}

func ParseCompletion(raw string) (Completion, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CompletionAll, nil
	}
	for _, c := range []Completion{CompletionAll, CompletionCompleted, CompletionPending} {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCompletion, raw)
}
