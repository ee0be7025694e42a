package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/todo/internal/model"
)

func fixedTime(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := model.ParseTimestamp(value)
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}
	return out
}

func TestEncodeLine(t *testing.T) {
	task := model.Task{
		Title:     "Pay rent",
		Category:  model.CategoryPersonal,
		Priority:  model.PriorityHigh,
		DueDate:   "03/01/2026",
		Completed: true,
		Timestamp: fixedTime(t, "2026-02-09 12:00:00"),
	}
	got := EncodeLine(task)
	want := "Pay rent|Personal|High|03/01/2026|True|2026-02-09 12:00:00"
	if got != want {
		t.Fatalf("EncodeLine = %q, want %q", got, want)
	}

	task.Completed = false
	task.DueDate = ""
	got = EncodeLine(task)
	want = "Pay rent|Personal|High||False|2026-02-09 12:00:00"
	if got != want {
		t.Fatalf("EncodeLine = %q, want %q", got, want)
	}
}

func TestDecodeSkipsMalformedLines(t *testing.T) {
	now := fixedTime(t, "2026-02-10 08:00:00")
	input := strings.Join([]string{
		"Write docs|Work|Medium|01/15/2026|False|2026-02-01 09:00:00",
		"",
		"too|few|fields",
		"a|b|c|d|e|f|g",
		"Bad time|Work|Low||False|yesterday",
		"  Gym|Personal|Low||True|2026-02-02 10:00:00  ",
		"No stamp|Errands|Urgent||yes|",
	}, "\n")

	tasks, skipped, err := Decode(strings.NewReader(input), now)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d: %#v", len(tasks), tasks)
	}
	if len(skipped) != 3 {
		t.Fatalf("expected 3 skipped lines, got %#v", skipped)
	}
	for _, s := range skipped {
		if !errors.Is(s.Reason, ErrMalformedLine) {
			t.Fatalf("expected ErrMalformedLine for line %d, got %v", s.Number, s.Reason)
		}
	}
	if skipped[0].Number != 3 || skipped[1].Number != 4 || skipped[2].Number != 5 {
		t.Fatalf("unexpected skipped line numbers: %#v", skipped)
	}

	if tasks[1].Title != "Gym" || !tasks[1].Completed {
		t.Fatalf("expected trimmed completed Gym task, got %#v", tasks[1])
	}
	last := tasks[2]
	if last.Completed {
		t.Fatal("expected completed values other than True to decode as false")
	}
	if last.Category != "Errands" || last.Priority != "Urgent" {
		t.Fatalf("expected unknown category/priority to be tolerated, got %#v", last)
	}
	if !last.Timestamp.Equal(now) {
		t.Fatalf("expected empty timestamp to default to now, got %s", last.Timestamp)
	}
}

func TestFlatFileLoadMissingFile(t *testing.T) {
	backend := NewFlatFile(filepath.Join(t.TempDir(), "missing.txt"))
	tasks, err := backend.Load(t.Context())
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}

func TestFlatFileSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.txt")
	backend := NewFlatFile(path)
	in := []model.Task{
		{Title: "First", Category: model.CategoryWork, Priority: model.PriorityLow, DueDate: "12/31/2024", Timestamp: fixedTime(t, "2026-01-01 10:00:00")},
		{Title: "First", Category: model.CategoryWork, Priority: model.PriorityLow, DueDate: "12/31/2024", Timestamp: fixedTime(t, "2026-01-01 10:00:00")},
		{Title: "Undated", Category: model.CategoryPersonal, Priority: model.PriorityHigh, Completed: true, Timestamp: fixedTime(t, "2026-01-02 11:30:15")},
	}
	if err := backend.Save(t.Context(), in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected temp file to be gone, stat err=%v", err)
	}

	out, err := backend.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d tasks, got %d", len(in), len(out))
	}
	for i := range in {
		if !in[i].SameFields(out[i]) {
			t.Fatalf("task %d mismatch:\n got  %#v\n want %#v", i, out[i], in[i])
		}
	}
}

func TestFlatFileSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	backend := NewFlatFile(path)
	ts := fixedTime(t, "2026-01-01 10:00:00")
	if err := backend.Save(t.Context(), []model.Task{{Title: "a", Timestamp: ts}, {Title: "b", Timestamp: ts}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := backend.Save(t.Context(), []model.Task{{Title: "c", Timestamp: ts}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := string(raw); got != "c||||False|2026-01-01 10:00:00\n" {
		t.Fatalf("unexpected file contents: %q", got)
	}
}

func TestFlatFileSaveFailure(t *testing.T) {
	dir := t.TempDir()
	backend := NewFlatFile(dir)
	err := backend.Save(t.Context(), []model.Task{{Title: "x"}})
	if err == nil {
		t.Fatal("expected error when the target path is a directory")
	}
}

func TestEncodeDecodeStream(t *testing.T) {
	ts := fixedTime(t, "2026-03-03 03:03:03")
	var buf bytes.Buffer
	in := []model.Task{{Title: "stream", Category: "Work", Priority: "Medium", Timestamp: ts}}
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, skipped, err := Decode(&buf, time.Now())
	if err != nil || len(skipped) != 0 {
		t.Fatalf("decode err=%v skipped=%v", err, skipped)
	}
	if len(out) != 1 || !out[0].SameFields(in[0]) {
		t.Fatalf("unexpected decode output: %#v", out)
	}
}
