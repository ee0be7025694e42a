package query

import (
	"fmt"
	"slices"

	"github.com/sandeepkv93/todo/internal/model"
)

type Stats struct {
	Total     int
	Pending   int
	Completed int
}

func (s Stats) String() string {
	return fmt.Sprintf("Total: %d | Pending: %d | Completed: %d", s.Total, s.Pending, s.Completed)
}

// Summarize counts over the whole list, ignoring any filter.
func Summarize(tasks []model.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}

// Categories lists the category filter choices: All, then TaskCategories.
func Categories(tasks []model.Task, known []string) []string {
	out := []string{CategoryAll}
	for _, c := range TaskCategories(tasks, known) {
		if c != CategoryAll {
			out = append(out, c)
		}
	}
	return out
}

// TaskCategories lists the configured categories, then any other category
// found in tasks in first-seen order.
func TaskCategories(tasks []model.Task, known []string) []string {
	out := make([]string, 0, len(known))
	for _, k := range known {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	for _, t := range tasks {
		c := string(t.Category)
		if c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// NextCategory cycles through choices, wrapping back to All.
func NextCategory(choices []string, current string) string {
	if len(choices) == 0 {
		return CategoryAll
	}
	idx := slices.Index(choices, current)
	return choices[(idx+1)%len(choices)]
}
