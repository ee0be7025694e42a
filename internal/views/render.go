package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header      string
	FilterBar   string
	ListPane    string
	DetailsPane string
	Overlay     string
	Help        string
	StatusLine  string
	StatusError bool
	Footer      string
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	filterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	overlayStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const (
	listPaneWidth    = 64
	detailsPaneWidth = 40
)

func RenderApp(data AppData) string {
	left := panelStyle.Width(listPaneWidth).Render(data.ListPane)
	right := panelStyle.Width(detailsPaneWidth).Render(data.DetailsPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	lines := []string{headerStyle.Render(data.Header)}
	if data.FilterBar != "" {
		lines = append(lines, filterStyle.Render(data.FilterBar))
	}
	lines = append(lines, row)
	if data.Overlay != "" {
		lines = append(lines, overlayStyle.Render(data.Overlay))
	}
	if data.Help != "" {
		lines = append(lines, panelStyle.Render(data.Help))
	}
	if data.StatusLine != "" {
		if data.StatusError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown falls back to the raw text when glamour cannot render it.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
