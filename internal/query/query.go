// Package query derives the displayed task order from a store snapshot.
// Nothing here mutates its input.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sandeepkv93/todo/internal/model"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

var ErrInvalidSortMode = errors.New("query: invalid sort mode")

type SortMode string

const (
	SortRecent   SortMode = "Recent"
	SortPriority SortMode = "Priority"
	SortDate     SortMode = "Date"
)

func (s SortMode) IsValid() bool {
	switch s {
	case SortRecent, SortPriority, SortDate:
		return true
	default:
		return false
	}
}

func (s SortMode) Next() SortMode {
	switch s {
	case SortRecent:
		return SortPriority
	case SortPriority:
		return SortDate
	default:
		return SortRecent
	}
}

func ParseSortMode(raw string) (SortMode, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SortRecent, nil
	}
	for _, s := range []SortMode{SortRecent, SortPriority, SortDate} {
		if strings.EqualFold(trimmed, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortMode, raw)
}

// Params is the complete filter and sort selection for one listing.
type Params struct {
	Search     string
	Completion model.Completion
	Category   string
	Sort       SortMode
}

func DefaultParams() Params {
	return Params{
		Completion: model.CompletionAll,
		Category:   CategoryAll,
		Sort:       SortRecent,
	}
}

// Run filters tasks by search text, completion and category, in that order,
// then sorts the survivors. The input slice is left untouched.
func Run(tasks []model.Task, p Params) []model.Task {
	out := Filter(tasks, p)
	Sort(out, p.Sort)
	return out
}

func Filter(tasks []model.Task, p Params) []model.Task {
	needle := strings.ToLower(p.Search)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		if !p.Completion.Keep(t) {
			continue
		}
		if p.Category != "" && p.Category != CategoryAll && string(t.Category) != p.Category {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Sort orders tasks in place. Every mode is stable.
func Sort(tasks []model.Task, mode SortMode) {
	switch mode {
	case SortPriority:
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	case SortDate:
		sortByDueDate(tasks)
	default:
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			return b.Timestamp.Compare(a.Timestamp)
		})
	}
}

// sortByDueDate puts dated tasks first in ascending order and keeps the
// undated ones, including unparseable dates, in their original order.
func sortByDueDate(tasks []model.Task) {
	type dated struct {
		task model.Task
		key  int64
	}
	withDate := make([]dated, 0, len(tasks))
	without := make([]model.Task, 0)
	for _, t := range tasks {
		if due, ok := t.Due(); ok {
			withDate = append(withDate, dated{task: t, key: due.Unix()})
			continue
		}
		without = append(without, t)
	}
	slices.SortStableFunc(withDate, func(a, b dated) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		default:
			return 0
		}
	})
	i := 0
	for _, d := range withDate {
		tasks[i] = d.task
		i++
	}
	for _, t := range without {
		tasks[i] = t
		i++
	}
}
