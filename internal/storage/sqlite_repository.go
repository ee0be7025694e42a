package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/todo/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load(ctx context.Context) ([]model.Task, error) {
	rows, err := r.listTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// Save replaces the whole table inside one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, tasks []model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	for i, task := range tasks {
		in := taskFromModel(task, i)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, title, category, priority, due_date, completed, created_at, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			in.ID, in.Title, in.Category, in.Priority, in.DueDate, boolInt(in.Completed), mustTime(in.CreatedAt), in.Position,
		)
		if err != nil {
			return fmt.Errorf("save task %q: %w", task.Title, err)
		}
	}
	return tx.Commit()
}

// CreateTask inserts task after the last stored position.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task model.Task) error {
	in := taskFromModel(task, 0)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, category, priority, due_date, completed, created_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM tasks))`,
		in.ID, in.Title, in.Category, in.Priority, in.DueDate, boolInt(in.Completed), mustTime(in.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create task %q: %w", task.Title, err)
	}
	return nil
}

// UpdateTask never touches created_at or position.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task model.Task) error {
	in := taskFromModel(task, 0)
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, category = ?, priority = ?, due_date = ?, completed = ?
		WHERE id = ?`,
		in.Title, in.Category, in.Priority, in.DueDate, boolInt(in.Completed), in.ID,
	)
	if err != nil {
		return fmt.Errorf("update task %q: %w", task.Title, err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) listTasks(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, category, priority, due_date, completed, created_at, position
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var completed int
	var created string
	if err := s.Scan(&out.ID, &out.Title, &out.Category, &out.Priority, &out.DueDate, &completed, &created, &out.Position); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
