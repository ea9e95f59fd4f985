package ui

import "github.com/charmbracelet/lipgloss"

// Shared styles for screens.
var (
	Title    = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	Subtitle = lipgloss.NewStyle().Foreground(colorMuted)
	Muted    = lipgloss.NewStyle().Foreground(colorDisabled)
	Link     = lipgloss.NewStyle().Foreground(colorLink).Bold(true)
	Error    = lipgloss.NewStyle().Foreground(colorError)
	Success  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	Accent   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)

	Input = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	PrimaryButton = lipgloss.NewStyle().
			Background(colorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 3)
	SecondaryButton = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorPrimary).
			Bold(true).
			Padding(0, 3)
	DisabledButton = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorDisabled).
			Padding(0, 3)

	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)
	headerAppStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	crumbStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	footerStyle    = lipgloss.NewStyle().
			Background(colorMantle)
	keyStyle      = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
	popupStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)
)

// Button renders a call to action in its enabled or disabled look.
func Button(label string, enabled bool) string {
	if enabled {
		return PrimaryButton.Render(label)
	}
	return DisabledButton.Render(label)
}
