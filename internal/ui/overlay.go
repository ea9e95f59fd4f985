package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// RenderPopup centres a bordered card with body over base, which is padded or
// clipped to width x height first.
func RenderPopup(base, body string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := splitToLines(base, height)
	for i := range canvas {
		canvas[i] = padRightANSI(canvas[i], width)
	}
	card := splitToLines(popupStyle.Render(body), 0)
	cardWidth := maxLineWidth(card)
	if cardWidth == 0 {
		return strings.Join(canvas, "\n")
	}
	x := max(0, (width-cardWidth)/2)
	y := max(0, (height-len(card))/2)

	for i, line := range card {
		row := y + i
		if row >= height {
			break
		}
		target := canvas[row]
		left := padRightANSI(ansi.Truncate(target, x, ""), x)
		mid := padRightANSI(line, cardWidth)
		right := dropColumns(target, x+cardWidth)
		canvas[row] = ansi.Truncate(left+mid+right, width, "")
	}
	return strings.Join(canvas, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, ansi.StringWidth(line))
	}
	return widest
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
