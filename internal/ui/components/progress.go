package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/revquiz/internal/ui/theme"
)

var (
	barFill  = lipgloss.NewStyle().Background(theme.Secondary)
	barTrack = lipgloss.NewStyle().Background(theme.Border)
)

// ProgressBar is a horizontal bar, optionally labelled and followed by the
// percentage. Width covers all three parts.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0 to 1
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	var label, pct string
	if p.Label != "" {
		label = theme.Body.Render(p.Label) + "  "
	}
	if p.ShowPercent {
		pct = theme.Dim.Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	w := max(4, p.Width-lipgloss.Width(label)-lipgloss.Width(pct))
	filled := max(0, min(int(float64(w)*p.Percent), w))
	return label + barFill.Render(strings.Repeat(" ", filled)) + barTrack.Render(strings.Repeat(" ", w-filled)) + pct
}

// Countdown renders the seconds left as a row of blocks, turning red in the
// last three seconds.
func Countdown(remaining, total int) string {
	if total <= 0 {
		return ""
	}
	remaining = max(0, min(remaining, total))
	style := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	if remaining <= 3 {
		style = style.Foreground(theme.Error)
	}
	bar := strings.Repeat("█", remaining) + theme.Dim.Render(strings.Repeat("░", total-remaining))
	return style.Render(fmt.Sprintf("%2ds ", remaining)) + style.Render(bar)
}
