package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/revquiz/internal/content"
	"github.com/abhisek/revquiz/internal/router"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/screens/chapters"
	"github.com/abhisek/revquiz/internal/screens/history"
	"github.com/abhisek/revquiz/internal/screens/quiz"
	"github.com/abhisek/revquiz/internal/screens/revisions"
	"github.com/abhisek/revquiz/internal/ui/components"
	"github.com/abhisek/revquiz/internal/ui/layout"
	"github.com/abhisek/revquiz/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	deps *screen.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps *screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	d := h.deps
	noContent := d.Content == nil
	return []components.MenuItem{
		{Label: "STUDY A CHAPTER", Detail: "story, verses, flashcards, quiz", Action: func() tea.Cmd {
			return router.Push(chapters.New(d))
		}},
		{Label: "MOCK EXAM", Detail: "written, all chapters", Disabled: noContent, Action: func() tea.Cmd {
			return router.Push(quiz.NewMock(d, content.StyleStandard))
		}},
		{Label: "AUDIO MOCK EXAM", Detail: "read aloud, self-graded", Disabled: noContent, Action: func() tea.Cmd {
			return router.Push(quiz.NewMock(d, content.StyleAudio))
		}},
		{Label: "REVISION", Detail: "review your mistakes", Action: func() tea.Cmd {
			return router.Push(revisions.New(d))
		}},
		{Label: "HISTORY", Detail: "past sessions", Disabled: d.EventRepo == nil, Action: func() tea.Cmd {
			return router.Push(history.New(d.EventRepo))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

// Init rebuilds the menu so counters are current after returning from a quiz.
func (h *HomeScreen) Init() tea.Cmd {
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	if selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
		h.menu.Selected = selected
	}
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.Compact(width, height)
	cw := contentWidth(width)

	analysis := h.deps.Progress.Analysis()
	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.deps.Progress.Streak(), h.deps.DaysToExam(), analysis, cw),
	}
	if focus := renderFocus(analysis, cw); focus != "" && !compact {
		sections = append(sections, focus)
	}
	if h.deps.Content == nil {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).Width(cw).Align(lipgloss.Center).
			Render("⚠ Set an LLM API key to generate questions (see revquiz --help)"))
	}
	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(h.menu.View()))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
