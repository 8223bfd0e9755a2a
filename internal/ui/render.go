package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasklist/internal/selectlist"
)

const (
	minPaneWidth = 24
	title        = "tasklist"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

func (m *tuiModel) View() string {
	if m.view.Done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	width := m.paneWidth()
	pending := renderPane(fmt.Sprintf("Pending (%d)", len(m.view.Pending)),
		m.view.Pending, m.view.PendingSelected, width, false)
	completed := renderPane(fmt.Sprintf("Completed (%d)", len(m.view.Completed)),
		m.view.Completed, m.view.CompletedSelected, width, true)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, pending, " ", completed))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.view.Composing {
		b.WriteString(m.help.View(composeKeyMap{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	screen := b.String()
	if !m.view.Composing {
		return screen
	}
	return m.overlayDialog(screen)
}

func (m *tuiModel) paneWidth() int {
	if m.width == 0 {
		return minPaneWidth
	}
	// Two bordered panes and a one column gap.
	w := (m.width-1)/2 - paneStyle.GetHorizontalFrameSize()
	if w < minPaneWidth {
		return minPaneWidth
	}
	return w
}

func (m *tuiModel) overlayDialog(screen string) string {
	dialog := dialogStyle.Render(paneTitleStyle.Render("New task") + "\n\n" + m.input.View())
	if m.width == 0 || m.height == 0 {
		return screen + "\n" + dialog
	}
	return overlayCenter(screen, dialog, m.width, m.height)
}

func renderPane(heading string, items []string, sel selectlist.Selection, width int, done bool) string {
	lines := []string{paneTitleStyle.Render(heading), ""}
	if len(items) == 0 {
		lines = append(lines, dimStyle.Render("  (empty)"))
	}
	cur, hasCur := sel.Index()
	for i, item := range items {
		lines = append(lines, formatTask(item, hasCur && i == cur, done))
	}
	return paneStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func formatTask(text string, selected, done bool) string {
	if selected {
		return selectedStyle.Render("> " + text)
	}
	if done {
		return "  " + completedStyle.Render(text)
	}
	return "  " + text
}
