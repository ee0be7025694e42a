package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/todo/internal/model"
)

var (
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	labelStyle     = lipgloss.NewStyle().Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	priorityStyles = map[model.Priority]lipgloss.Style{
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

// TaskLine is the plain one-line form of a task, shared by the list pane
// and the CLI listing.
func TaskLine(t model.Task) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("%s [%s] %s - %s", check, t.Priority, t.Title, t.Category)
	if t.HasDueDate() {
		line += fmt.Sprintf(" (Due: %s)", t.DueDate)
	}
	return line
}

// RenderTaskRow styles one list row: completed tasks are struck through,
// pending ones get a priority-coloured badge.
func RenderTaskRow(index int, t model.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}
	num := fmt.Sprintf("%2d. ", index)
	if t.Completed {
		return cursor + num + completedStyle.Render(TaskLine(t))
	}
	badge := fmt.Sprintf("[%s]", t.Priority)
	if style, ok := priorityStyles[t.Priority]; ok {
		badge = style.Render(badge)
	}
	rest := t.Title + " - " + string(t.Category)
	if t.HasDueDate() {
		rest += fmt.Sprintf(" (Due: %s)", t.DueDate)
	}
	return cursor + num + "[ ] " + badge + " " + rest
}

func RenderEmptyList(filtered bool) string {
	if filtered {
		return hintStyle.Render("No tasks match the current filters.")
	}
	return hintStyle.Render("No tasks yet. Press a to add one.")
}

type FilterBarData struct {
	Search     string
	Completion string
	Category   string
	Sort       string
	Shown      int
	Total      int
}

func RenderFilterBar(data FilterBarData) string {
	search := data.Search
	if search == "" {
		search = "-"
	}
	return fmt.Sprintf("search: %s | show: %s | category: %s | sort: %s | %d of %d",
		search, data.Completion, data.Category, data.Sort, data.Shown, data.Total)
}

type FormField struct {
	Label   string
	View    string
	Focused bool
}

type FormData struct {
	Editing bool
	Fields  []FormField
	Error   string
}

func RenderForm(data FormData) string {
	var b strings.Builder
	if data.Editing {
		b.WriteString(labelStyle.Render("Update Task") + "\n")
	} else {
		b.WriteString(labelStyle.Render("Add New Task") + "\n")
	}
	for _, f := range data.Fields {
		marker := "  "
		if f.Focused {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%-9s %s\n", marker, f.Label+":", f.View))
	}
	if data.Error != "" {
		b.WriteString(errorStyle.Render("error: "+data.Error) + "\n")
	}
	b.WriteString(hintStyle.Render("[tab] next field  [enter] save  [esc] cancel"))
	return b.String()
}

func RenderSearch(inputView string) string {
	return "search " + inputView + "\n" + hintStyle.Render("[enter] apply  [esc] clear")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command " + inputView + "\n" + hintStyle.Render("add | edit | done | delete | search | filter | category | sort")
}

func RenderConfirmDelete(t model.Task) string {
	return fmt.Sprintf("Delete %q? [y] yes  [n] no", t.Title)
}

// TaskMarkdown describes a task for the details pane.
func TaskMarkdown(t model.Task) string {
	status := "Pending"
	if t.Completed {
		status = "Completed"
	}
	due := "none"
	if t.HasDueDate() {
		due = t.DueDate
	}
	var b strings.Builder
	b.WriteString("## " + t.Title + "\n\n")
	b.WriteString(fmt.Sprintf("- **Status:** %s\n", status))
	b.WriteString(fmt.Sprintf("- **Category:** %s\n", t.Category))
	b.WriteString(fmt.Sprintf("- **Priority:** %s\n", t.Priority))
	b.WriteString(fmt.Sprintf("- **Due:** %s\n", due))
	b.WriteString(fmt.Sprintf("- **Created:** %s\n", model.FormatTimestamp(t.Timestamp)))
	return b.String()
}

func RenderHelpPanel(bindings []string, helpView string) string {
	return "help:\n" + strings.Join(bindings, "\n") + "\n\n" + helpView
}
