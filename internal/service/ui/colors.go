package ui

import "github.com/charmbracelet/lipgloss"

// ANSI colours keep the terminal chat readable on light and dark themes.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	SystemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// AlertStyle frames crisis replies so the helpline stands out.
	AlertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")).
			Padding(0, 1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)
