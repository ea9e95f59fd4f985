package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderHeader draws the app name followed by the back-stack trail.
func RenderHeader(app string, trail []string, width int) string {
	bg := colorMantle
	line := headerAppStyle.Background(bg).Render(app)
	if len(trail) > 0 {
		line += crumbStyle.Background(bg).Render("  " + strings.Join(trail, " › "))
	}
	return renderBar(headerBarStyle, max(1, width), line, bg)
}

// RenderFooter lists the shortcuts of scope.
func RenderFooter(keys *KeyRegistry, scope string, width int) string {
	bindings := keys.BindingsForScope(scope)
	bg := colorMantle
	ks := keyStyle.Background(bg)
	ds := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.binding().Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, ks.Render(h.Key)+space+ds.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = ds.Render("No shortcuts")
	}
	return renderBar(footerStyle, max(1, width), line, bg)
}

func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}

// ClipHeight keeps at most height lines of s.
func ClipHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
