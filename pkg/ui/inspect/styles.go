package inspect

import "github.com/charmbracelet/lipgloss"

// theme groups reusable styles for rendered wire trees.
type theme struct {
	title      lipgloss.Style
	titleMeta  lipgloss.Style
	key        lipgloss.Style
	index      lipgloss.Style
	text       lipgloss.Style
	number     lipgloss.Style
	literal    lipgloss.Style
	attachment lipgloss.Style
	box        lipgloss.Style
	errorBox   lipgloss.Style
	errorTitle lipgloss.Style
}

// defaultTheme borrows the retro palette of the terminal chat view.
func defaultTheme() theme {
	return theme{
		title: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("88")),
		titleMeta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("223")),
		key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		index: lipgloss.NewStyle().
			Foreground(lipgloss.Color("130")),
		text: lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")),
		number: lipgloss.NewStyle().
			Foreground(lipgloss.Color("44")),
		literal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("180")),
		attachment: lipgloss.NewStyle().
			Foreground(lipgloss.Color("109")).
			Italic(true),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("130")).
			Padding(0, 1),
		errorBox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("203")).
			Foreground(lipgloss.Color("203")).
			Padding(0, 1),
		errorTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
	}
}
