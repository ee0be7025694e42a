package query

import (
	"testing"

	"github.com/sandeepkv93/todo/internal/model"
)

func TestSummarize(t *testing.T) {
	tasks := []model.Task{
		task("a", func(t *model.Task) { t.Completed = true }),
		task("b", nil),
		task("c", nil),
	}
	s := Summarize(tasks)
	if s.Total != 3 || s.Pending != 2 || s.Completed != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if s.String() != "Total: 3 | Pending: 2 | Completed: 1" {
		t.Fatalf("unexpected stats line: %q", s.String())
	}
	if Summarize(nil).String() != "Total: 0 | Pending: 0 | Completed: 0" {
		t.Fatal("unexpected empty stats line")
	}
}

func TestCategoriesIncludesStoredExtras(t *testing.T) {
	tasks := []model.Task{
		task("a", func(t *model.Task) { t.Category = "Errands" }),
		task("b", func(t *model.Task) { t.Category = "Work" }),
		task("c", func(t *model.Task) { t.Category = "" }),
	}
	got := Categories(tasks, []string{"Personal", "Work"})
	want := []string{"All", "Personal", "Work", "Errands"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	own := TaskCategories(tasks, []string{"Personal", "Work"})
	if len(own) != 3 || own[0] != "Personal" || own[2] != "Errands" {
		t.Fatalf("expected task categories without All, got %v", own)
	}
}

func TestNextCategoryWraps(t *testing.T) {
	choices := []string{"All", "Personal", "Work"}
	if NextCategory(choices, "All") != "Personal" {
		t.Fatal("expected Personal after All")
	}
	if NextCategory(choices, "Work") != "All" {
		t.Fatal("expected wrap to All")
	}
	if NextCategory(choices, "Gone") != "All" {
		t.Fatal("expected unknown current to restart at All")
	}
}
