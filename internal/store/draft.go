package store

import (
	"strings"

	"github.com/sandeepkv93/todo/internal/model"
)

// Input is raw user text for the editable fields of a task.
type Input struct {
	Title    string
	Category string
	Priority string
	DueDate  string
}

// DraftOf returns the editable fields of t.
func DraftOf(t model.Task) Draft {
	return Draft{Title: t.Title, Category: t.Category, Priority: t.Priority, DueDate: t.DueDate}
}

// Resolve applies in on top of base. A blank category or priority, or one
// spelled exactly like the base value, keeps the base value as stored. Any
// other category must match one of categories and any other priority must
// be Low, Medium or High, both case-insensitively. Title and due date are
// taken as given and checked by Add or Update.
func Resolve(base Draft, in Input, categories []string) (Draft, error) {
	d := base
	d.Title = in.Title
	d.DueDate = in.DueDate

	if c := strings.TrimSpace(in.Category); c != "" && c != string(base.Category) {
		cat, err := model.NormalizeCategory(c, categories)
		if err != nil {
			return Draft{}, &model.ValidationError{Field: "category", Message: "must be one of " + strings.Join(categories, ", ")}
		}
		d.Category = cat
	}
	if p := strings.TrimSpace(in.Priority); p != "" && p != string(base.Priority) {
		pri, err := model.NormalizePriority(p)
		if err != nil {
			return Draft{}, &model.ValidationError{Field: "priority", Message: "must be Low, Medium or High"}
		}
		d.Priority = pri
	}
	return d, nil
}
