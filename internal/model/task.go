package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DueDateLayout accepts one- or two-digit month and day.
	DueDateLayout   = "1/2/2006"
	TimestampLayout = "2006-01-02 15:04:05"
	// FieldDelimiter separates fields in the flat-file format, which has no escaping.
	FieldDelimiter = "|"
)

var (
	ErrValidation      = errors.New("model: validation failed")
	ErrInvalidDueDate  = errors.New("model: invalid due date")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidCategory = errors.New("model: invalid task category")
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// NormalizePriority maps user input such as "high" onto a known priority.
func NormalizePriority(raw string) (Priority, error) {
	trimmed := strings.TrimSpace(raw)
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if strings.EqualFold(trimmed, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
}

type Category string

const (
	CategoryPersonal Category = "Personal"
	CategoryWork     Category = "Work"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryPersonal, CategoryWork:
		return true
	default:
		return false
	}
}

// NormalizeCategory matches raw case-insensitively against known and
// returns the canonical spelling.
func NormalizeCategory(raw string, known []string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	for _, k := range known {
		if strings.EqualFold(trimmed, k) {
			return Category(k), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

type Task struct {
	ID        string
	Title     string
	Category  Category
	Priority  Priority
	DueDate   string
	Completed bool
	Timestamp time.Time
}

func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}

// Due returns the parsed due date. ok is false when the task has no due
// date or the stored value does not parse.
func (t Task) Due() (due time.Time, ok bool) {
	if !t.HasDueDate() {
		return time.Time{}, false
	}
	parsed, err := ParseDueDate(t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// SameFields reports whether two tasks carry identical user-visible data.
// IDs are ignored.
func (t Task) SameFields(o Task) bool {
	return t.Title == o.Title &&
		t.Category == o.Category &&
		t.Priority == o.Priority &&
		t.DueDate == o.DueDate &&
		t.Completed == o.Completed &&
		t.Timestamp.Equal(o.Timestamp)
}

func ParseDueDate(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DueDateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, raw)
	}
	return parsed, nil
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

func ParseTimestamp(raw string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, raw, time.Local)
}

// NewTimestamp truncates now to the precision the flat file can hold.
func NewTimestamp(now time.Time) time.Time {
	return now.Local().Truncate(time.Second)
}
