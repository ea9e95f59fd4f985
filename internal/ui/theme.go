package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#0C212C"
	colorPrimary  lipgloss.Color = "#2791B5"
	colorLink     lipgloss.Color = "#4BB0D3"
	colorMuted    lipgloss.Color = "#52525B"
	colorDisabled lipgloss.Color = "#A3A3A3"
	colorBorder   lipgloss.Color = "#E7EAEB"
	colorSurface  lipgloss.Color = "#E5E5E5"
	colorMantle   lipgloss.Color = "#F4F7F8"
	colorError    lipgloss.Color = "#DC2626"
	colorSuccess  lipgloss.Color = "#16A34A"
)
