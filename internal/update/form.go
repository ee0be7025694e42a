package update

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/query"
	"github.com/sandeepkv93/todo/internal/store"
	"github.com/sandeepkv93/todo/internal/views"
)

const (
	fieldTitle = iota
	fieldCategory
	fieldPriority
	fieldDue
	fieldCount
)

var formLabels = [fieldCount]string{"Title", "Category", "Priority", "Due"}

type formState struct {
	editingID string
	inputs    [fieldCount]textinput.Model
	focus     int
	err       string
}

func newFormState() formState {
	var f formState
	placeholders := [fieldCount]string{"What needs doing?", "Personal", "Medium", "MM/DD/YYYY (optional)"}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		in.Width = 40
		f.inputs[i] = in
	}
	return f
}

// openForm prepares the add form, or the update form prefilled from task.
func (m *Model) openForm(task *model.Task) {
	m.form = newFormState()
	if task != nil {
		m.form.editingID = task.ID
		m.form.inputs[fieldTitle].SetValue(task.Title)
		m.form.inputs[fieldCategory].SetValue(string(task.Category))
		m.form.inputs[fieldPriority].SetValue(string(task.Priority))
		m.form.inputs[fieldDue].SetValue(task.DueDate)
	} else {
		m.form.inputs[fieldCategory].SetValue(string(m.defaultCategory))
		m.form.inputs[fieldPriority].SetValue(string(m.defaultPriority))
	}
	for i := range m.form.inputs {
		m.form.inputs[i].CursorEnd()
	}
	m.form.inputs[fieldTitle].Focus()
	m.Mode = ModeForm
}

func (m *Model) closeForm() {
	for i := range m.form.inputs {
		m.form.inputs[i].Blur()
	}
	m.Mode = ModeList
}

func (m *Model) focusField(next int) {
	m.form.inputs[m.form.focus].Blur()
	m.form.focus = (next + fieldCount) % fieldCount
	m.form.inputs[m.form.focus].Focus()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "cancelled"}
		return m, nil
	case "tab", "down":
		m.focusField(m.form.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusField(m.form.focus - 1)
		return m, nil
	case "enter":
		return m.submitForm(), nil
	}
	cmd := typeInto(&m.form.inputs[m.form.focus], msg)
	return m, cmd
}

func (m Model) submitForm() Model {
	f := m.form
	base := m.defaults()
	if existing, ok := m.store.Get(f.editingID); ok {
		base = store.DraftOf(existing)
	}
	draft, err := m.resolve(base, store.Input{
		Title:    f.inputs[fieldTitle].Value(),
		Category: f.inputs[fieldCategory].Value(),
		Priority: f.inputs[fieldPriority].Value(),
		DueDate:  f.inputs[fieldDue].Value(),
	})
	if err == nil {
		var task model.Task
		if f.editingID == "" {
			task, err = m.store.Add(m.ctx, draft)
		} else {
			task, err = m.store.Update(m.ctx, f.editingID, draft)
		}
		if err == nil {
			verb := "Added"
			if f.editingID != "" {
				verb = "Updated"
			}
			m.closeForm()
			m.SelectedID = task.ID
			m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", verb, task.Title)}
			m.refresh()
			return m
		}
	}

	if errors.Is(err, store.ErrNotFound) {
		m.closeForm()
		m.refresh()
	} else {
		m.form.err = err.Error()
	}
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	return m
}

// defaults is the base for a new task.
func (m Model) defaults() store.Draft {
	return store.Draft{Category: m.defaultCategory, Priority: m.defaultPriority}
}

// resolve applies typed values on top of base. Categories already used by
// stored tasks are accepted alongside the configured ones.
func (m Model) resolve(base store.Draft, in store.Input) (store.Draft, error) {
	return store.Resolve(base, in, query.TaskCategories(m.store.Tasks(), m.categories))
}

func (m Model) renderForm() string {
	fields := make([]views.FormField, 0, fieldCount)
	for i, in := range m.form.inputs {
		fields = append(fields, views.FormField{Label: formLabels[i], View: in.View(), Focused: i == m.form.focus})
	}
	return views.RenderForm(views.FormData{
		Editing: m.form.editingID != "",
		Fields:  fields,
		Error:   m.form.err,
	})
}

// typeInto appends typed runes directly and leaves editing keys to the
// textinput itself.
func typeInto(in *textinput.Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyRunes:
		in.SetValue(in.Value() + string(msg.Runes))
		in.CursorEnd()
		return nil
	case tea.KeySpace:
		in.SetValue(in.Value() + " ")
		in.CursorEnd()
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}
