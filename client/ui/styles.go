package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Form     lipgloss.Style
	Label    lipgloss.Style
	Footer   lipgloss.Style
}

func DefaultStyles() Styles {
	pink := lipgloss.Color("205")
	gray := lipgloss.Color("245")

	return Styles{
		Header: lipgloss.NewStyle().
			Background(pink).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(pink).
			Bold(true).
			MarginBottom(1),

		Muted: lipgloss.NewStyle().
			Foreground(gray),

		Selected: lipgloss.NewStyle().
			Foreground(pink).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),

		Form: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(pink).
			Padding(1, 2),

		Label: lipgloss.NewStyle().
			Foreground(gray).
			Width(10),

		Footer: lipgloss.NewStyle().
			Foreground(gray).
			Padding(0, 2),
	}
}
