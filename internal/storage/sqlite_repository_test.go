package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/todo/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todo-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestTaskRowChanges(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created, err := model.ParseTimestamp("2026-02-09 12:00:00")
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}

	if err := repo.Save(ctx, []model.Task{
		{ID: "first", Title: "Existing", Category: model.CategoryWork, Priority: model.PriorityLow, Timestamp: created},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	task := model.Task{
		ID:        "task-1",
		Title:     "Write schema",
		Category:  "Home",
		Priority:  "Urgent",
		DueDate:   "02/20/2026",
		Timestamp: created.Add(time.Minute),
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got := loadAll(t, repo)
	if len(got) != 2 || got[1].ID != task.ID || !got[1].SameFields(task) {
		t.Fatalf("expected created task appended unchanged, got %#v", got)
	}

	task.Title = "Write schema v2"
	task.Completed = true
	moved := task
	moved.Timestamp = created.Add(time.Hour)
	if err := repo.UpdateTask(ctx, moved); err != nil {
		t.Fatalf("update task: %v", err)
	}
	got = loadAll(t, repo)
	if !got[1].SameFields(task) {
		t.Fatalf("expected fields updated and created_at kept:\n got  %#v\n want %#v", got[1], task)
	}

	if err := repo.DeleteTask(ctx, "first"); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if err := repo.CreateTask(ctx, model.Task{ID: "last", Title: "Appended", Timestamp: created}); err != nil {
		t.Fatalf("create after delete: %v", err)
	}
	got = loadAll(t, repo)
	if len(got) != 2 || got[0].ID != task.ID || got[1].ID != "last" {
		t.Fatalf("expected insertion order kept after delete, got %#v", got)
	}

	if err := repo.DeleteTask(ctx, "first"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
	if err := repo.UpdateTask(ctx, model.Task{ID: "missing", Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on missing update, got: %v", err)
	}
}

func loadAll(t *testing.T, repo *SQLiteRepository) []model.Task {
	t.Helper()
	out, err := repo.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return out
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := t.Context()
	ts, err := model.ParseTimestamp("2026-02-09 12:00:00")
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}

	in := []model.Task{
		{ID: "b", Title: "Second inserted first", Category: model.CategoryWork, Priority: model.PriorityLow, Timestamp: ts},
		{ID: "a", Title: "Dated", Category: model.CategoryPersonal, Priority: model.PriorityHigh, DueDate: "12/31/2024", Completed: true, Timestamp: ts.Add(time.Minute)},
	}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("second save: %v", err)
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 tasks after overwrite, got %d", len(out))
	}
	for i := range in {
		if out[i].ID != in[i].ID || !out[i].SameFields(in[i]) {
			t.Fatalf("task %d mismatch:\n got  %#v\n want %#v", i, out[i], in[i])
		}
	}

	if err := repo.Save(ctx, in[:1]); err != nil {
		t.Fatalf("save subset: %v", err)
	}
	out, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].ID != "b" {
		t.Fatalf("expected full overwrite to drop removed task, got %#v", out)
	}
}

func TestOpenSQLiteMigrates(t *testing.T) {
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "open.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer repo.Close()

	tasks, err := repo.Load(t.Context())
	if err != nil {
		t.Fatalf("load from fresh db: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty db, got %d tasks", len(tasks))
	}
}
