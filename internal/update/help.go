package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/todo/internal/views"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Search   key.Binding
	Filter   key.Binding
	Category key.Binding
	Sort     key.Binding
	Palette  key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "move up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "move down")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space/x", "toggle complete")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "update task")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle all/completed/pending")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle category")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command palette")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload from disk")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Search, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Add, k.Edit, k.Delete},
		{k.Search, k.Filter, k.Category, k.Sort},
		{k.Palette, k.Reload, k.Help, k.Quit},
	}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	var plain []string
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			plain = append(plain, fmt.Sprintf("- %s: %s", h.Key, h.Desc))
		}
	}
	plain = append(plain,
		"",
		"palette:",
		"- add <title> [cat:<c>] [pri:<p>] [due:<MM/DD/YYYY>]",
		"- edit <n> [title] [cat:] [pri:] [due:|due:none]",
		"- done <n> | delete <n>",
		"- search [text] | filter all|completed|pending",
		"- category <name|all> | sort recent|priority|date",
	)
	hm := m.helpModel
	hm.ShowAll = true
	return views.RenderHelpPanel(plain, hm.View(m.keys))
}
