// Package theme is the palette and shared styles: parchment gold on deep
// indigo.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary   = lipgloss.Color("#D4A017") // gold
	Secondary = lipgloss.Color("#60A5FA") // sky
	Accent    = lipgloss.Color("#F59E0B") // amber
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#1E1B4B") // indigo
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title     = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Heading   = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	Body      = lipgloss.NewStyle().Foreground(Text)
	Dim       = lipgloss.NewStyle().Foreground(TextDim)
	Hint      = Dim.Italic(true)
	Reference = lipgloss.NewStyle().Foreground(Secondary).Italic(true)
)

var (
	card          = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	Card          = card.BorderForeground(Border)
	HighlightCard = card.BorderForeground(Primary)
)

// Option and answer states.
var (
	Selected   = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Unselected = Body
	Correct    = lipgloss.NewStyle().Bold(true).Foreground(Success)
	Incorrect  = Correct.Foreground(Error)
)

var (
	tab         = lipgloss.NewStyle().Padding(0, 2)
	TabActive   = tab.Bold(true).Background(Primary).Foreground(BgDark)
	TabInactive = tab.Foreground(TextDim)
)
