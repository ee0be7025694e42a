package storage

import (
	"time"

	"github.com/sandeepkv93/todo/internal/model"
)

// Task is the SQLite row shape of a task.
type Task struct {
	ID        string
	Title     string
	Category  string
	Priority  string
	DueDate   string
	Completed bool
	CreatedAt time.Time
	Position  int
}

func taskFromModel(in model.Task, position int) Task {
	return Task{
		ID:        in.ID,
		Title:     in.Title,
		Category:  string(in.Category),
		Priority:  string(in.Priority),
		DueDate:   in.DueDate,
		Completed: in.Completed,
		CreatedAt: in.Timestamp,
		Position:  position,
	}
}

func (t Task) toModel() model.Task {
	return model.Task{
		ID:        t.ID,
		Title:     t.Title,
		Category:  model.Category(t.Category),
		Priority:  model.Priority(t.Priority),
		DueDate:   t.DueDate,
		Completed: t.Completed,
		Timestamp: t.CreatedAt.Local(),
	}
}
