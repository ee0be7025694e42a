package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/todo/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// Backend persists the full task list. Save always overwrites everything
// previously stored.
type Backend interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
}

// Repository is a Backend that can also change a single stored task.
// CreateTask appends after every stored task; UpdateTask never touches the
// creation time.
type Repository interface {
	Backend

	CreateTask(ctx context.Context, task model.Task) error
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id string) error
}

var (
	_ Backend    = (*FlatFile)(nil)
	_ Repository = (*SQLiteRepository)(nil)
)
