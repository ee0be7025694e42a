package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/query"
	"github.com/sandeepkv93/todo/internal/store"
	"github.com/sandeepkv93/todo/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

// statusTTL is how long a status message stays before it is cleared.
const statusTTL = 5 * time.Second

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	prev := m.Status
	next, cmd := m.update(msg)
	if next.Status != prev && next.Status.Text != "" && !next.Quitting {
		next.statusSeq++
		cmd = tea.Batch(cmd, clearStatusAfter(next.statusSeq))
	}
	return next, cmd
}

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

func reloadCmd() tea.Msg {
	return ReloadMsg{}
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModeForm:
			return m.handleFormKey(typed)
		case ModePalette:
			return m.handlePaletteKey(typed)
		case ModeSearch:
			return m.handleSearchKey(typed)
		case ModeConfirmDelete:
			return m.handleConfirmKey(typed), nil
		}
		return m.handleListKey(typed)
	case tea.WindowSizeMsg:
		m.taskList.SetSize(min(62, max(typed.Width-48, 30)), max(typed.Height-12, 5))
		m.details.Height = max(typed.Height-12, 5)
		return m, nil
	case ClearStatusMsg:
		if typed.Seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case ReloadMsg:
		m.store.Load(m.ctx)
		m.refresh()
		if err := m.store.LoadErr(); err != nil {
			return m, func() tea.Msg { return AppErrorMsg{Err: err} }
		}
		m.Status = StatusBar{Text: fmt.Sprintf("reloaded %d task(s)", m.store.Len())}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		m.selectRow(m.taskList.Index() - 1)
	case key.Matches(msg, k.Down):
		m.selectRow(m.taskList.Index() + 1)
	case key.Matches(msg, k.Toggle):
		m = m.toggleSelected()
	case key.Matches(msg, k.Add):
		m.openForm(nil)
		m.Status = StatusBar{}
	case key.Matches(msg, k.Edit):
		t, ok := m.Selected()
		if !ok {
			m.Status = StatusBar{Text: "select a task to update", IsError: true}
			return m, nil
		}
		m.openForm(&t)
		m.Status = StatusBar{}
	case key.Matches(msg, k.Delete):
		t, ok := m.Selected()
		if !ok {
			m.Status = StatusBar{Text: "select a task to delete", IsError: true}
			return m, nil
		}
		m.DeleteID = t.ID
		m.Mode = ModeConfirmDelete
	case key.Matches(msg, k.Search):
		m.Mode = ModeSearch
		m.searchInput.SetValue(m.Params.Search)
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
	case key.Matches(msg, k.Filter):
		m.Params.Completion = m.Params.Completion.Next()
		m.refresh()
		m.Status = StatusBar{Text: fmt.Sprintf("showing: %s", m.Params.Completion)}
	case key.Matches(msg, k.Category):
		choices := query.Categories(m.store.Tasks(), m.categories)
		m.Params.Category = query.NextCategory(choices, m.Params.Category)
		m.refresh()
		m.Status = StatusBar{Text: fmt.Sprintf("category: %s", m.Params.Category)}
	case key.Matches(msg, k.Sort):
		m.Params.Sort = m.Params.Sort.Next()
		m.refresh()
		m.Status = StatusBar{Text: fmt.Sprintf("sort: %s", m.Params.Sort)}
	case key.Matches(msg, k.Palette):
		m.openPalette()
	case key.Matches(msg, k.Reload):
		return m, reloadCmd
	case key.Matches(msg, k.Help):
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m Model) toggleSelected() Model {
	t, ok := m.Selected()
	if !ok {
		return m
	}
	toggled, err := m.store.ToggleCompleted(m.ctx, t.ID)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: toggleMessage(toggled)}
	m.refresh()
	return m
}

// handleSearchKey filters as the user types; esc clears the search.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "esc":
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.Mode = ModeList
	case "enter":
		m.searchInput.Blur()
		m.Mode = ModeList
	default:
		cmd = typeInto(&m.searchInput, msg)
	}
	m.Params.Search = m.searchInput.Value()
	m.refresh()
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		t, ok := m.store.Get(m.DeleteID)
		if ok && m.store.Delete(m.ctx, t.ID) {
			m.Status = StatusBar{Text: "Deleted: " + t.Title}
		} else {
			m.LastError = store.ErrNotFound
			m.Status = StatusBar{Text: store.ErrNotFound.Error(), IsError: true}
		}
	case "n", "N", "esc":
		m.Status = StatusBar{Text: "delete cancelled"}
	default:
		return m
	}
	m.DeleteID = ""
	m.Mode = ModeList
	m.refresh()
	return m
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	stats := query.Summarize(m.store.Tasks()).String()
	status := stats
	if m.Status.Text != "" {
		status = fmt.Sprintf("%s | %s", stats, m.Status.Text)
	}
	return views.RenderApp(views.AppData{
		Header:      "To-Do List",
		FilterBar:   m.renderFilterBar(),
		ListPane:    m.renderListPane(),
		DetailsPane: m.renderDetailsPane(),
		Overlay:     m.renderOverlay(),
		Help:        m.renderHelpIfVisible(),
		StatusLine:  status,
		StatusError: m.Status.IsError,
		Footer:      m.helpModel.ShortHelpView(m.keys.ShortHelp()),
	})
}
