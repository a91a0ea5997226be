// Package chapters is the chapter picker.
package chapters

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/revquiz/internal/router"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/screens/study"
	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/ui/components"
	"github.com/abhisek/revquiz/internal/ui/layout"
	"github.com/abhisek/revquiz/internal/ui/theme"
)

const columns = 6

// ChaptersScreen lets the learner pick one of the 22 chapters, either with
// the arrow keys or by typing its number.
type ChaptersScreen struct {
	deps     *screen.Deps
	cursor   int // zero-based chapter index
	input    components.NumberInput
	mistakes map[int]int
}

var _ screen.Screen = (*ChaptersScreen)(nil)
var _ screen.KeyHintProvider = (*ChaptersScreen)(nil)

// New creates a ChaptersScreen.
func New(deps *screen.Deps) *ChaptersScreen {
	return &ChaptersScreen{
		deps:  deps,
		input: components.NewNumberInput("1-22", 2),
	}
}

func (s *ChaptersScreen) Init() tea.Cmd {
	s.mistakes = make(map[int]int)
	if a := s.deps.Progress.Analysis(); a != nil {
		for _, c := range a.ByChapter {
			s.mistakes[c.Chapter] = c.Count
		}
	}
	return s.input.Init()
}

func (s *ChaptersScreen) Title() string {
	return "Chapters"
}

func (s *ChaptersScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "0-9", Description: "Type chapter"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// Chapter returns the chapter Enter would open.
func (s *ChaptersScreen) Chapter() int {
	if n, ok := s.input.Value(); ok {
		return n
	}
	return s.cursor + 1
}

func (s *ChaptersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "left", "h":
		s.move(-1)
		return s, nil
	case "right", "l":
		s.move(1)
		return s, nil
	case "up", "k":
		s.move(-columns)
		return s, nil
	case "down", "j":
		s.move(columns)
		return s, nil
	case "enter":
		ch := s.Chapter()
		if ch < 1 || ch > session.ChapterCount {
			s.input.Reset()
			return s, nil
		}
		s.input.Reset()
		s.cursor = ch - 1
		return s, router.Push(study.New(s.deps, ch))
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChaptersScreen) move(delta int) {
	s.input.Reset()
	next := s.cursor + delta
	if next >= 0 && next < session.ChapterCount {
		s.cursor = next
	}
}

func (s *ChaptersScreen) View(width, height int) string {
	cell := lipgloss.NewStyle().Width(8).Align(lipgloss.Center).Border(lipgloss.RoundedBorder())

	var rows []string
	var row []string
	for i := 0; i < session.ChapterCount; i++ {
		ch := i + 1
		label := fmt.Sprintf("%d", ch)
		if n := s.mistakes[ch]; n > 0 {
			label += theme.Incorrect.Render(fmt.Sprintf(" •%d", n))
		}
		style := cell.BorderForeground(theme.Border).Foreground(theme.Text)
		if i == s.cursor {
			style = cell.BorderForeground(theme.Primary).Foreground(theme.Primary).Bold(true)
		}
		row = append(row, style.Render(label))
		if len(row) == columns || ch == session.ChapterCount {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Choose a chapter"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n\n")
	b.WriteString(theme.Dim.Render("Go to: ") + s.input.View())
	if a := s.deps.Progress.Analysis(); a != nil && a.WeakestChapter > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("• marks mistakes to revise. Weakest: chapter %d", a.WeakestChapter)))
	}

	return components.Centered(b.String(), width, height)
}
