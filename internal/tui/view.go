package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	dirtyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFF00"))
	cleanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

// ModelView renders the TUI model's view as a string.
func ModelView(m model) string {
	switch m.ActiveView {
	case ViewQuitting:
		return quittingView()
	case ViewConfirmQuit:
		return confirmQuitView()
	case ViewInput:
		return inputView(m)
	default:
		return linesView(m)
	}
}

func quittingView() string {
	return "Goodbye.\n"
}

func headerView(m model) string {
	name := m.sess.Filename
	if name == "" {
		name = "<unnamed>"
	}
	status := cleanStyle.Render("saved")
	if m.sess.Modified {
		status = dirtyStyle.Render("modified")
	}
	return fmt.Sprintf("%s %s  %s  %s",
		headerStyle.Render("File:"), name,
		status,
		headerStyle.Render(fmt.Sprintf("%d lines", m.sess.Store.Len())),
	)
}

func linesView(m model) string {
	body := m.list.View()
	if m.sess.Store.Len() == 0 {
		body = statusStyle.Render("[Buffer is empty]")
	}
	lineList := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#555555")).
		Padding(0, 1).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		headerView(m),
		lineList,
		statusStyle.Render(m.status),
		helpStyle.Render("a append • i insert • e edit • d delete • / search • s save • w save as • q quit"),
	)
}

func inputView(m model) string {
	block := lipgloss.NewStyle().Padding(1).BorderStyle(lipgloss.RoundedBorder()).Render(
		fmt.Sprintf("%s\n\n%s\n\n%s",
			headerStyle.Render(m.mode.label()),
			m.input.View(),
			helpStyle.Render("enter confirm • esc cancel"),
		),
	)
	return lipgloss.JoinVertical(lipgloss.Left, headerView(m), block)
}

func confirmQuitView() string {
	warnStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))
	return lipgloss.NewStyle().Padding(1).BorderStyle(lipgloss.DoubleBorder()).Render(
		fmt.Sprintf("%s\n\n%s",
			warnStyle.Render("You have unsaved changes."),
			dirtyStyle.Render("Quit anyway? (y/n)")),
	)
}
