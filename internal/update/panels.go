package update

import (
	"slices"

	"github.com/charmbracelet/bubbles/list"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/query"
	"github.com/sandeepkv93/todo/internal/views"
)

// refresh re-runs the query and keeps the cursor on the same task when it
// is still visible, otherwise on the same row.
func (m *Model) refresh() {
	prev := m.taskList.Index()
	m.Visible = query.Run(m.store.Tasks(), m.Params)

	items := make([]list.Item, 0, len(m.Visible))
	for _, t := range m.Visible {
		items = append(items, taskItem{task: t})
	}
	m.taskList.SetItems(items)

	if len(m.Visible) == 0 {
		m.SelectedID = ""
		m.details.SetContent("")
		return
	}
	idx := slices.IndexFunc(m.Visible, func(t model.Task) bool { return t.ID == m.SelectedID })
	if idx < 0 {
		idx = min(max(prev, 0), len(m.Visible)-1)
	}
	m.selectRow(idx)
}

func (m *Model) selectRow(idx int) {
	if len(m.Visible) == 0 {
		return
	}
	idx = min(max(idx, 0), len(m.Visible)-1)
	m.taskList.Select(idx)
	m.SelectedID = m.Visible[idx].ID
	m.details.SetContent(views.RenderMarkdown(views.TaskMarkdown(m.Visible[idx]), m.details.Width-2))
	m.details.GotoTop()
}

func (m Model) renderListPane() string {
	if len(m.Visible) == 0 {
		filtered := m.store.Len() > 0
		return views.RenderEmptyList(filtered)
	}
	return m.taskList.View()
}

func (m Model) renderDetailsPane() string {
	if _, ok := m.Selected(); !ok {
		return "details:\n(no selection)"
	}
	return m.details.View()
}

func (m Model) renderOverlay() string {
	switch m.Mode {
	case ModeForm:
		return m.renderForm()
	case ModeSearch:
		return views.RenderSearch(m.searchInput.View())
	case ModePalette:
		return views.RenderCommandPalette(true, m.commandInput.View())
	case ModeConfirmDelete:
		if t, ok := m.store.Get(m.DeleteID); ok {
			return views.RenderConfirmDelete(t)
		}
	}
	return ""
}

func (m Model) renderFilterBar() string {
	return views.RenderFilterBar(views.FilterBarData{
		Search:     m.Params.Search,
		Completion: string(m.Params.Completion),
		Category:   m.Params.Category,
		Sort:       string(m.Params.Sort),
		Shown:      len(m.Visible),
		Total:      m.store.Len(),
	})
}
