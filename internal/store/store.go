// Package store owns the authoritative in-memory task list and rewrites the
// backend after every mutation.
package store

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sandeepkv93/todo/internal/logging"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
)

var ErrNotFound = errors.New("store: task not found")

// Draft carries the user-editable fields of a task.
type Draft struct {
	Title    string
	Category model.Category
	Priority model.Priority
	DueDate  string
}

func (d Draft) normalized() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.DueDate = strings.TrimSpace(d.DueDate)
	return d
}

func (d Draft) validate() error {
	return model.ValidateFields(d.Title, d.Category, d.Priority, d.DueDate)
}

type Store struct {
	backend storage.Backend
	logger  *log.Logger
	now     func() time.Time
	newID   func() string
	tasks   []model.Task
	loadErr error
	saveErr error
}

type Option func(*Store)

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  logging.Discard(),
		now:     time.Now,
		newID:   uuid.NewString,
		tasks:   make([]model.Task, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with whatever the backend can provide.
// Failures are logged and kept for LoadErr; a partial result is kept.
func (s *Store) Load(ctx context.Context) {
	tasks, err := s.backend.Load(ctx)
	s.loadErr = err
	if err != nil {
		s.logger.Error("loading tasks", "err", err, "loaded", len(tasks))
	}
	s.tasks = make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = s.newID()
		}
		s.tasks = append(s.tasks, t)
	}
	s.logger.Debug("tasks loaded", "count", len(s.tasks))
}

// Save writes the full list. Mutations call it and only log the error;
// callers that need to report it use SaveErr.
func (s *Store) Save(ctx context.Context) error {
	s.saveErr = s.backend.Save(ctx, s.Tasks())
	if s.saveErr != nil {
		s.logger.Error("saving tasks", "err", s.saveErr, "count", len(s.tasks))
	}
	return s.saveErr
}

// LoadErr returns the error from the last Load, or nil.
func (s *Store) LoadErr() error {
	return s.loadErr
}

// SaveErr returns the error from the last write to the backend, or nil
// when it succeeded.
func (s *Store) SaveErr() error {
	return s.saveErr
}

// persist writes one mutation. Backends that can change a single row get
// only that change; a failed row change falls back to rewriting the list.
func (s *Store) persist(ctx context.Context, change func(storage.Repository) error) {
	if repo, ok := s.backend.(storage.Repository); ok {
		err := change(repo)
		if err == nil {
			s.saveErr = nil
			return
		}
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("stored row missing, rewriting all tasks")
		} else {
			s.logger.Warn("row change failed, rewriting all tasks", "err", err)
		}
	}
	_ = s.Save(ctx)
}

func (s *Store) Add(ctx context.Context, in Draft) (model.Task, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:        s.newID(),
		Title:     in.Title,
		Category:  in.Category,
		Priority:  in.Priority,
		DueDate:   in.DueDate,
		Completed: false,
		Timestamp: model.NewTimestamp(s.now()),
	}
	s.tasks = append(s.tasks, task)
	s.persist(ctx, func(r storage.Repository) error { return r.CreateTask(ctx, task) })
	return task, nil
}

// Update replaces the editable fields of the task with id and returns the
// new value. Completion and timestamp are kept.
func (s *Store) Update(ctx context.Context, id string, in Draft) (model.Task, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return model.Task{}, err
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, ErrNotFound
	}
	task := s.tasks[idx]
	task.Title = in.Title
	task.Category = in.Category
	task.Priority = in.Priority
	task.DueDate = in.DueDate
	s.tasks[idx] = task
	s.persist(ctx, func(r storage.Repository) error { return r.UpdateTask(ctx, task) })
	return task, nil
}

func (s *Store) ToggleCompleted(ctx context.Context, id string) (model.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, ErrNotFound
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	task := s.tasks[idx]
	s.persist(ctx, func(r storage.Repository) error { return r.UpdateTask(ctx, task) })
	return task, nil
}

// Delete removes the task with id. It reports whether anything was removed;
// a missing id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	s.persist(ctx, func(r storage.Repository) error { return r.DeleteTask(ctx, id) })
	return true
}

func (s *Store) Get(id string) (model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

// Tasks returns a copy in insertion order.
func (s *Store) Tasks() []model.Task {
	return slices.Clone(s.tasks)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}
