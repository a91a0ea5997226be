package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/revquiz/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for centered panels.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel renders content in a rounded card of the given width.
func Panel(content string, width int) string {
	return theme.Card.Width(width).Render(content)
}

// Centered places content in the middle of the given area.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Message renders a centered one-off message such as a loading or error line.
func Message(text string, style lipgloss.Style, width, height int) string {
	return Centered(style.Render(text), width, height)
}
