// Package revisions shows the mistake log and its chapter analysis.
package revisions

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/revquiz/internal/revision"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/ui/components"
	"github.com/abhisek/revquiz/internal/ui/layout"
	"github.com/abhisek/revquiz/internal/ui/theme"
)

// RevisionScreen lists recorded mistakes newest first.
type RevisionScreen struct {
	deps         *screen.Deps
	mistakes     []revision.MistakeRecord
	analysis     *revision.Analysis
	offset       int
	confirmClear bool
	errMsg       string
}

var _ screen.Screen = (*RevisionScreen)(nil)
var _ screen.KeyHintProvider = (*RevisionScreen)(nil)
var _ screen.EscapeHandler = (*RevisionScreen)(nil)

// New creates a RevisionScreen.
func New(deps *screen.Deps) *RevisionScreen {
	return &RevisionScreen{deps: deps}
}

func (s *RevisionScreen) Init() tea.Cmd {
	s.reload()
	return nil
}

func (s *RevisionScreen) reload() {
	s.mistakes = revision.Newest(s.deps.Progress.Mistakes())
	s.analysis = s.deps.Progress.Analysis()
}

func (s *RevisionScreen) Title() string {
	return "Revision"
}

// HandlesEscape lets Esc cancel the clear confirmation.
func (s *RevisionScreen) HandlesEscape() bool {
	return s.confirmClear
}

func (s *RevisionScreen) KeyHints() []layout.KeyHint {
	if s.confirmClear {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear all"},
			{Key: "N", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if len(s.mistakes) > 0 {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Clear"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *RevisionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.confirmClear {
		switch key {
		case "y", "Y":
			s.confirmClear = false
			if err := s.deps.Progress.ClearMistakes(context.Background()); err != nil {
				s.deps.Log().Error("clear mistakes", zap.Error(err))
				s.errMsg = err.Error()
			}
			s.offset = 0
			s.reload()
		case "n", "N", "esc":
			s.confirmClear = false
		}
		return s, nil
	}

	switch key {
	case "c", "C":
		if len(s.mistakes) > 0 {
			s.confirmClear = true
		}
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset = max(0, s.offset-10)
	case "pgdown":
		s.offset += 10
	}
	return s, nil
}

func (s *RevisionScreen) View(width, height int) string {
	if s.confirmClear {
		return components.Centered(lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(fmt.Sprintf("Clear all %d mistakes?", len(s.mistakes))),
			theme.Dim.Render("This cannot be undone."),
			"",
			lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, clear"),
			lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep them"),
		), width, height)
	}

	if len(s.mistakes) == 0 {
		msg := "No mistakes to revise. Keep studying!"
		if s.errMsg != "" {
			msg += "\n\n" + theme.Incorrect.Render(s.errMsg)
		}
		return components.Message(msg, theme.Hint, width, height)
	}

	cw := components.ContentWidth(width)
	head := renderAnalysis(s.analysis, cw)
	if s.errMsg != "" {
		head += "\n" + theme.Incorrect.Render(s.errMsg)
	}
	list := renderMistakes(s.mistakes, cw)

	visible, offset := layout.Window(list, s.offset, max(1, height-lipgloss.Height(head)-2))
	s.offset = offset
	return components.Centered(head+"\n\n"+visible, width, height)
}

func renderAnalysis(a *revision.Analysis, cw int) string {
	if a == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.Heading.Render(fmt.Sprintf("%d mistakes to revise", a.Total)))
	if a.WeakestChapter > 0 {
		b.WriteString("\n" + theme.Body.Render(fmt.Sprintf("Weakest chapter: %d (%d mistakes)", a.WeakestChapter, a.WeakestChapterCount)))
	}
	b.WriteString("\n")
	for _, c := range a.ByChapter {
		label := fmt.Sprintf("ch %2d", c.Chapter)
		if c.Chapter == 0 {
			label = "other"
		}
		bar := components.NewProgressBar(label, float64(c.Count)/float64(a.Total), false, min(cw-8, 40))
		b.WriteString("\n" + bar.View() + theme.Dim.Render(fmt.Sprintf(" %d", c.Count)))
	}
	return theme.HighlightCard.Width(cw).Render(b.String())
}

func renderMistakes(mistakes []revision.MistakeRecord, cw int) string {
	var b strings.Builder
	for _, m := range mistakes {
		meta := m.Date.Local().Format("Jan 02 2006")
		if m.Chapter > 0 {
			meta = fmt.Sprintf("chapter %d · %s", m.Chapter, meta)
		}
		b.WriteString(theme.Dim.Render(meta) + "\n")
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(m.Question) + "\n")
		b.WriteString(theme.Incorrect.Render("✗ "+m.UserAnswer) + "\n")
		b.WriteString(theme.Correct.Render("✓ "+m.CorrectAnswer) + "  " + theme.Reference.Render(m.Reference) + "\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
