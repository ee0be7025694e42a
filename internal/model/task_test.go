package model

import (
	"errors"
	"testing"
	"time"
)

func TestValidateFieldsSuccess(t *testing.T) {
	if err := ValidateFields("Write report", CategoryWork, PriorityHigh, "12/31/2024"); err != nil {
		t.Fatalf("expected valid fields, got error: %v", err)
	}
	if err := ValidateFields("No due date", CategoryPersonal, PriorityLow, ""); err != nil {
		t.Fatalf("expected empty due date to be accepted, got: %v", err)
	}
}

func TestValidateFieldsBlankTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t"} {
		err := ValidateFields(title, CategoryWork, PriorityLow, "")
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "title" {
			t.Fatalf("title %q: expected title validation error, got %v", title, err)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("title %q: expected errors.Is ErrValidation", title)
		}
	}
}

func TestValidateFieldsDueDate(t *testing.T) {
	cases := []struct {
		due   string
		valid bool
	}{
		{"12/31/2024", true},
		{"1/5/2024", true},
		{"02/29/2024", true},
		{"13/40/2024", false},
		{"02/30/2024", false},
		{"2024-01-01", false},
		{"01/01/24", false},
		{"tomorrow", false},
	}
	for _, tc := range cases {
		err := ValidateFields("task", CategoryWork, PriorityLow, tc.due)
		if tc.valid && err != nil {
			t.Fatalf("due %q: expected valid, got %v", tc.due, err)
		}
		if !tc.valid && !errors.Is(err, ErrValidation) {
			t.Fatalf("due %q: expected validation error, got %v", tc.due, err)
		}
	}
}

func TestValidateFieldsRejectsDelimiterAndNewlines(t *testing.T) {
	if err := ValidateFields("a|b", CategoryWork, PriorityLow, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected delimiter in title to be rejected, got %v", err)
	}
	if err := ValidateFields("ok", Category("Wo|rk"), PriorityLow, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected delimiter in category to be rejected, got %v", err)
	}
	if err := ValidateFields("line\nbreak", CategoryWork, PriorityLow, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected newline in title to be rejected, got %v", err)
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityHigh.Rank() != 0 || PriorityMedium.Rank() != 1 || PriorityLow.Rank() != 2 {
		t.Fatal("unexpected rank for known priorities")
	}
	if Priority("Urgent").Rank() != 3 || Priority("").Rank() != 3 {
		t.Fatal("expected unknown priorities to rank last")
	}
}

func TestNormalizePriority(t *testing.T) {
	got, err := NormalizePriority(" high ")
	if err != nil || got != PriorityHigh {
		t.Fatalf("expected High, got %q err=%v", got, err)
	}
	if _, err := NormalizePriority("urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestNormalizeCategory(t *testing.T) {
	known := []string{"Personal", "Work", "Errands"}
	got, err := NormalizeCategory("errands", known)
	if err != nil || got != "Errands" {
		t.Fatalf("expected Errands, got %q err=%v", got, err)
	}
	if _, err := NormalizeCategory("Gym", known); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	now := NewTimestamp(time.Date(2026, 2, 9, 12, 30, 45, 999, time.Local))
	raw := FormatTimestamp(now)
	if raw != "2026-02-09 12:30:45" {
		t.Fatalf("unexpected timestamp format: %q", raw)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}
	if !parsed.Equal(now) {
		t.Fatalf("round trip mismatch: %s vs %s", parsed, now)
	}
}

func TestTaskDue(t *testing.T) {
	task := Task{DueDate: "03/04/2025"}
	due, ok := task.Due()
	if !ok || due.Month() != time.March || due.Day() != 4 || due.Year() != 2025 {
		t.Fatalf("unexpected due parse: %v ok=%v", due, ok)
	}
	if _, ok := (Task{}).Due(); ok {
		t.Fatal("expected no due date for empty value")
	}
	if _, ok := (Task{DueDate: "garbage"}).Due(); ok {
		t.Fatal("expected malformed due date to report ok=false")
	}
}

func TestCompletionKeepAndParse(t *testing.T) {
	done := Task{Completed: true}
	open := Task{}
	if !CompletionAll.Keep(done) || !CompletionAll.Keep(open) {
		t.Fatal("All should keep everything")
	}
	if !CompletionCompleted.Keep(done) || CompletionCompleted.Keep(open) {
		t.Fatal("Completed should keep only completed tasks")
	}
	if CompletionPending.Keep(done) || !CompletionPending.Keep(open) {
		t.Fatal("Pending should keep only open tasks")
	}

	got, err := ParseCompletion("pending")
	if err != nil || got != CompletionPending {
		t.Fatalf("expected Pending, got %q err=%v", got, err)
	}
	if got, _ := ParseCompletion(""); got != CompletionAll {
		t.Fatalf("expected empty to mean All, got %q", got)
	}
	if _, err := ParseCompletion("someday"); !errors.Is(err, ErrInvalidCompletion) {
		t.Fatalf("expected ErrInvalidCompletion, got %v", err)
	}
	if CompletionPending.Next() != CompletionAll {
		t.Fatal("expected completion cycle to wrap")
	}
}
