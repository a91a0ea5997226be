// Package layout draws the header and footer around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/revquiz/internal/ui/theme"
)

// Below this size the app shows a resize notice instead of a screen.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one footer entry.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats are the counters shown on the right of the header.
type HeaderStats struct {
	Streak   int
	DaysLeft int // days until the exam; negative when unknown or past
}

// Chrome is everything drawn around a screen body.
type Chrome struct {
	Title  string
	Stats  HeaderStats
	Hints  []KeyHint
	Notice string // one-line message above the key hints
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Render frames the output of body, which is given the width and height
// left between header and footer.
func (c Chrome) Render(width, height int, body func(w, h int) string) string {
	if width < MinWidth || height < MinHeight {
		return lipgloss.NewStyle().
			Width(width).Height(height).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
				MinWidth, MinHeight, width, height))
	}

	header, footer := c.header(width), c.footer(width)
	h := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := lipgloss.NewStyle().Width(width).Height(h).Render(body(width, h))
	return strings.Join([]string{header, content, footer}, "\n")
}

func (c Chrome) header(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  RevQuiz")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(c.Title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ %d day", c.Stats.Streak))
	if c.Stats.DaysLeft >= 0 {
		right = lipgloss.NewStyle().Foreground(theme.Secondary).Render(examIn(c.Stats.DaysLeft)) + "   " + right
	}

	// Center the title in the bar, keeping at least one space on each side.
	inner := max(0, width-4)
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max(1, (inner-mw)/2-lw)
	gapR := max(1, inner-lw-gapL-mw-rw)

	return bar.Width(width).Render(left + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right)
}

func examIn(days int) string {
	switch days {
	case 0:
		return "exam today"
	case 1:
		return "exam tomorrow"
	}
	return fmt.Sprintf("exam in %d days", days)
}

func (c Chrome) footer(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(c.Hints))
	for i, h := range c.Hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	line := "  " + strings.Join(parts, "   ")
	if c.Notice != "" {
		line = theme.Incorrect.Render("  ! "+c.Notice) + "\n" + line
	}
	return bar.Width(width).Render(line)
}

// Compact reports whether a body of this size should drop secondary
// sections.
func Compact(width, height int) bool {
	return width < 100 || height < 24
}

// Window returns the height lines of content starting at offset, and the
// offset clamped to the scrollable range.
func Window(content string, offset, height int) (string, int) {
	if height <= 0 {
		return "", 0
	}
	lines := strings.Split(content, "\n")
	offset = min(max(offset, 0), max(len(lines)-height, 0))
	end := min(offset+height, len(lines))
	return strings.Join(lines[offset:end], "\n"), offset
}
