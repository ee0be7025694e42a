package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/query"
	"github.com/sandeepkv93/todo/internal/store"
)

// dueNone clears the due date in an edit command.
const dueNone = "none"

func (m *Model) openPalette() {
	m.Mode = ModePalette
	m.commandInput.SetValue("")
	m.commandInput.Focus()
}

func (m *Model) closePalette() {
	m.Mode = ModeList
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		return m.executePaletteCommand(m.commandInput.Value()), nil
	}
	cmd := typeInto(&m.commandInput, msg)
	return m, cmd
}

func (m Model) executePaletteCommand(input string) Model {
	raw := strings.TrimSpace(input)
	m.closePalette()
	m.logger.Debug("palette command", "input", raw)

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			draft, err := m.resolve(m.defaults(), store.Input{Title: a.Title, Category: a.Category, Priority: a.Priority, DueDate: a.DueDate})
			if err != nil {
				return commands.Result{}, err
			}
			task, err := m.store.Add(m.ctx, draft)
			if err != nil {
				return commands.Result{}, err
			}
			m.SelectedID = task.ID
			return commands.Result{Message: "Added: " + task.Title}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			task, err := m.taskAt(e.Index)
			if err != nil {
				return commands.Result{}, err
			}
			in := store.Input{Title: task.Title, Category: e.Category, Priority: e.Priority, DueDate: task.DueDate}
			if e.Title != "" {
				in.Title = e.Title
			}
			if strings.EqualFold(e.DueDate, dueNone) {
				in.DueDate = ""
			} else if e.DueDate != "" {
				in.DueDate = e.DueDate
			}
			draft, err := m.resolve(store.DraftOf(task), in)
			if err != nil {
				return commands.Result{}, err
			}
			updated, err := m.store.Update(m.ctx, task.ID, draft)
			if err != nil {
				return commands.Result{}, err
			}
			m.SelectedID = updated.ID
			return commands.Result{Message: "Updated: " + updated.Title}, nil
		},
		Done: func(t commands.TargetArgs) (commands.Result, error) {
			task, err := m.taskAt(t.Index)
			if err != nil {
				return commands.Result{}, err
			}
			toggled, err := m.store.ToggleCompleted(m.ctx, task.ID)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: toggleMessage(toggled)}, nil
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			task, err := m.taskAt(t.Index)
			if err != nil {
				return commands.Result{}, err
			}
			m.store.Delete(m.ctx, task.ID)
			return commands.Result{Message: "Deleted: " + task.Title}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.Params.Search = s.Text
			m.searchInput.SetValue(s.Text)
			if s.Text == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %s", s.Text)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.Params.Completion = f.Completion
			return commands.Result{Message: fmt.Sprintf("showing: %s", f.Completion)}, nil
		},
		Category: func(c commands.CategoryArgs) (commands.Result, error) {
			choices := query.Categories(m.store.Tasks(), m.categories)
			for _, choice := range choices {
				if strings.EqualFold(choice, c.Name) {
					m.Params.Category = choice
					return commands.Result{Message: fmt.Sprintf("category: %s", choice)}, nil
				}
			}
			return commands.Result{}, &commands.CommandError{
				Code:    commands.ErrCodeInvalidArgument,
				Message: fmt.Sprintf("unknown category %q, choose from %s", c.Name, strings.Join(choices, ", ")),
			}
		},
		Sort: func(s commands.SortArgs) (commands.Result, error) {
			m.Params.Sort = s.Mode
			return commands.Result{Message: fmt.Sprintf("sort: %s", s.Mode)}, nil
		},
	})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.refresh()
	return m
}

// taskAt resolves a 1-based position in the displayed list.
func (m Model) taskAt(n int) (model.Task, error) {
	if n < 1 || n > len(m.Visible) {
		return model.Task{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("no task #%d in the current list", n),
		}
	}
	return m.Visible[n-1], nil
}

func toggleMessage(t model.Task) string {
	if t.Completed {
		return "Completed: " + t.Title
	}
	return "Reopened: " + t.Title
}
