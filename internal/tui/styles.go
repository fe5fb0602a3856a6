package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedRowStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("170")).
				Foreground(lipgloss.Color("170"))

	fieldNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
