package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/revquiz/internal/revision"
	"github.com/abhisek/revquiz/internal/ui/theme"
)

const titleFull = `╦═╗╔═╗╦  ╦  ╔═╗ ╦ ╦╦╔═╗
╠╦╝║╣ ╚╗╔╝  ║═╬╗║ ║║╔═╝
╩╚═╚═╝ ╚╝   ╚═╝╚╚═╝╩╚═╝`

const titleCompact = "R · E · V · Q · U · I · Z"

const subtitle = "வெளிப்படுத்தின விசேஷம் · Book of Revelation"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	block := style.Render(art) + "\n" + theme.Dim.Render(subtitle)
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(block)
}

// renderStatsBar renders streak, exam countdown and revision counters.
func renderStatsBar(streak, daysLeft int, a *revision.Analysis, cw int) string {
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	examStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	mistakeStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)

	parts := []string{streakStyle.Render(fmt.Sprintf("★ %d DAY STREAK", streak))}
	if daysLeft >= 0 {
		parts = append(parts, examStyle.Render(fmt.Sprintf("⏳ %d DAYS TO EXAM", daysLeft)))
	}
	if a == nil {
		parts = append(parts, theme.Dim.Render("✓ NO MISTAKES"))
	} else {
		parts = append(parts, mistakeStyle.Render(fmt.Sprintf("✗ %d TO REVISE", a.Total)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(parts, "  "))
}

// renderFocus points at the weakest chapter when there is one.
func renderFocus(a *revision.Analysis, cw int) string {
	if a == nil || a.WeakestChapter == 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("Focus: chapter %d (%d mistakes)", a.WeakestChapter, a.WeakestChapterCount))
}

func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
