package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorHeader   = lipgloss.Color("86")
	ColorLabel    = lipgloss.Color("245")
	ColorValue    = lipgloss.Color("255")
	ColorSubtle   = lipgloss.Color("240")
	ColorCritical = lipgloss.Color("196")
	ColorAccent   = lipgloss.Color("214")
	ColorSelectFg = lipgloss.Color("229")
	ColorSelectBg = lipgloss.Color("57")
)

// Shared styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel)

	ValueStyle = lipgloss.NewStyle().Foreground(ColorValue)

	SubtleStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)

	NameStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	SelectedStyle = lipgloss.NewStyle().Foreground(ColorSelectFg).Background(ColorSelectBg)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorHeader).
			Padding(0, 1)
)
