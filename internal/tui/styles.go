package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
//
//nolint:gochecknoglobals // Shared style palette.
var (
	ColorHeader    = lipgloss.Color("39")
	ColorBorder    = lipgloss.Color("240")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("241")
	ColorHighlight = lipgloss.Color("229")
	ColorSelected  = lipgloss.Color("57")
	ColorWarning   = lipgloss.Color("214")
)

// Component styles.
//
//nolint:gochecknoglobals // Shared component styles.
var (
	HeaderStyle  = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle   = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	BoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(0, 1)

	TableHeaderStyle   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true).BorderBottom(true)
	TableSelectedStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Background(ColorSelected)

	// Page bar.
	CurrentPageStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Background(ColorSelected).Bold(true)
	PageStyle        = lipgloss.NewStyle().Foreground(ColorValue)
)
