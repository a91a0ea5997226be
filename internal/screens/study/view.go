package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/revquiz/internal/content"
	"github.com/abhisek/revquiz/internal/ui/theme"
)

func renderTabs(active Tab) string {
	parts := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		if t == active {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func wrap(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Foreground(theme.Text)
}

func renderStory(cc *content.ChapterContext, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(cc.Title))
	b.WriteString("\n\n")
	b.WriteString(wrap(width).Render(cc.Summary))

	if len(cc.KeyVerses) > 0 {
		b.WriteString("\n\n" + theme.Heading.Render("Key verses") + "\n")
		for _, v := range cc.KeyVerses {
			b.WriteString(wrap(width).Render("❝ "+v) + "\n")
		}
	}
	if len(cc.Hints) > 0 {
		b.WriteString("\n" + theme.Heading.Render("Remember") + "\n")
		for _, h := range cc.Hints {
			b.WriteString(wrap(width).Render("• "+h) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderVerses(cc *content.ChapterContext, width int) string {
	if len(cc.FullText) == 0 {
		return theme.Hint.Render("The chapter text is not available.")
	}
	var b strings.Builder
	for _, v := range cc.FullText {
		num := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%d ", v.Number))
		b.WriteString(num + wrap(width-4).Render(v.Text) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderFlashcard(cards []content.Flashcard, idx int, flipped bool, width int) string {
	if len(cards) == 0 {
		return theme.Hint.Render("No flashcards for this chapter.")
	}
	c := cards[idx]
	text, style := c.Front, theme.Card
	if flipped {
		text, style = c.Back, theme.HighlightCard
	}
	cardWidth := min(width, 56)
	card := style.
		Width(cardWidth).
		Height(7).
		Align(lipgloss.Center, lipgloss.Center).
		Render(text)

	side := "front"
	if flipped {
		side = "back"
	}
	footer := theme.Dim.Render(fmt.Sprintf("card %d of %d · %s", idx+1, len(cards), side))
	return card + "\n" + lipgloss.NewStyle().Width(cardWidth).Align(lipgloss.Center).Render(footer)
}

func renderCommentary(cc *content.ChapterContext, width int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Historical and cultural context") + "\n")
	if cc.Commentary.CulturalContext == "" {
		b.WriteString(theme.Hint.Render("Not available."))
	} else {
		b.WriteString(wrap(width).Render(cc.Commentary.CulturalContext))
	}

	for _, in := range cc.Commentary.Interpretations {
		b.WriteString("\n\n")
		b.WriteString(theme.Reference.Render("Verses "+in.VerseRef) + "\n")
		b.WriteString(wrap(width).Render(in.Explanation))
		if len(in.CrossReferences) > 0 {
			b.WriteString("\n" + theme.Dim.Width(width).Render("See also: "+strings.Join(in.CrossReferences, "; ")))
		}
	}
	return b.String()
}
