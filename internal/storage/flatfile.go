package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todo/internal/model"
)

const flatFileFields = 6

var ErrMalformedLine = errors.New("storage: malformed line")

// SkippedLine records a stored line that could not be decoded.
type SkippedLine struct {
	Number int
	Reason error
}

// FlatFile stores one task per line as
// title|category|priority|due_date|completed|timestamp.
type FlatFile struct {
	path   string
	logger *log.Logger
	now    func() time.Time
}

type FlatFileOption func(*FlatFile)

func WithFlatFileLogger(logger *log.Logger) FlatFileOption {
	return func(f *FlatFile) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func WithFlatFileClock(now func() time.Time) FlatFileOption {
	return func(f *FlatFile) {
		if now != nil {
			f.now = now
		}
	}
}

func NewFlatFile(path string, opts ...FlatFileOption) *FlatFile {
	f := &FlatFile{
		path:   path,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FlatFile) Path() string {
	return f.path
}

// Load returns the decodable tasks. A missing file is an empty list.
// Malformed lines are skipped and logged.
func (f *FlatFile) Load(ctx context.Context) ([]model.Task, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	tasks, skipped, err := Decode(file, model.NewTimestamp(f.now()))
	for _, s := range skipped {
		f.logger.Warn("skipping stored task", "path", f.path, "line", s.Number, "reason", s.Reason)
	}
	if err != nil {
		return tasks, fmt.Errorf("read %s: %w", f.path, err)
	}
	return tasks, nil
}

// Save overwrites the file through a temp file and rename.
func (f *FlatFile) Save(ctx context.Context, tasks []model.Task) error {
	dir := filepath.Dir(f.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	tmp := f.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := Encode(file, tasks); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func Encode(w io.Writer, tasks []model.Task) error {
	bw := bufio.NewWriter(w)
	for _, task := range tasks {
		if _, err := bw.WriteString(EncodeLine(task) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func EncodeLine(task model.Task) string {
	completed := "False"
	if task.Completed {
		completed = "True"
	}
	return strings.Join([]string{
		task.Title,
		string(task.Category),
		string(task.Priority),
		task.DueDate,
		completed,
		model.FormatTimestamp(task.Timestamp),
	}, model.FieldDelimiter)
}

// Decode reads every line of r. now stands in for empty timestamps.
func Decode(r io.Reader, now time.Time) ([]model.Task, []SkippedLine, error) {
	tasks := make([]model.Task, 0)
	var skipped []SkippedLine
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	number := 0
	for sc.Scan() {
		number++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		task, err := DecodeLine(line, now)
		if err != nil {
			skipped = append(skipped, SkippedLine{Number: number, Reason: err})
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, skipped, sc.Err()
}

func DecodeLine(line string, now time.Time) (model.Task, error) {
	parts := strings.Split(line, model.FieldDelimiter)
	if len(parts) != flatFileFields {
		return model.Task{}, fmt.Errorf("%w: want %d fields, got %d", ErrMalformedLine, flatFileFields, len(parts))
	}
	ts := now
	if parts[5] != "" {
		parsed, err := model.ParseTimestamp(parts[5])
		if err != nil {
			return model.Task{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedLine, parts[5])
		}
		ts = parsed
	}
	return model.Task{
		Title:     parts[0],
		Category:  model.Category(parts[1]),
		Priority:  model.Priority(parts[2]),
		DueDate:   parts[3],
		Completed: parts[4] == "True",
		Timestamp: ts,
	}, nil
}
