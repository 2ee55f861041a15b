package tui

import "github.com/charmbracelet/lipgloss"

// Colors used across the dashboard.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorInfo      = lipgloss.Color("39")  // Blue
	colorDanger    = lipgloss.Color("203")
)

var (
	sidebarStyle = lipgloss.NewStyle().
			Width(26).
			Padding(1, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colorMuted)

	navItem = lipgloss.NewStyle().Foreground(colorSecondary).Padding(0, 1)

	navActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(colorPrimary).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHighlight).MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted)

	cardLabel = lipgloss.NewStyle().Foreground(colorSecondary)
	cardValue = lipgloss.NewStyle().Bold(true)

	headerCell = lipgloss.NewStyle().Bold(true).Foreground(colorSecondary).Padding(0, 1)
	cell       = lipgloss.NewStyle().Padding(0, 1)
	cursorRow  = lipgloss.NewStyle().Background(lipgloss.Color("236"))

	chip       = lipgloss.NewStyle().Foreground(colorSecondary).Padding(0, 1)
	chipOn     = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(colorPrimary).Padding(0, 1)
	chipFocus  = lipgloss.NewStyle().Underline(true)
	facetLabel = lipgloss.NewStyle().Width(14).Foreground(colorSecondary)
	facetFocus = facetLabel.Foreground(colorHighlight).Bold(true)

	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	disabledStyle = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	enabledStyle  = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	barStyle      = lipgloss.NewStyle().Foreground(colorPrimary)
	errorStyle    = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)

	modalStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorHighlight)

	toastSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(colorSuccess).Padding(0, 2)
	toastInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(colorInfo).Padding(0, 2)
	toastError   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(colorDanger).Padding(0, 2)
)
