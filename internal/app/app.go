// Package app is the root Bubble Tea model: it routes input to the active
// screen and draws the shared chrome.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/revquiz/internal/router"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/screens/home"
	"github.com/abhisek/revquiz/internal/ui/layout"
)

var (
	rootHints = []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	nestedHints = []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
)

// Model is the root model.
type Model struct {
	deps          *screen.Deps
	router        *router.Router
	width, height int
	notice        string // cleared by the next key or navigation
}

func New(deps *screen.Deps) Model {
	return Model{deps: deps, router: router.New(home.New(deps))}
}

func (m Model) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case router.NavMsg:
		m.notice = msg.Notice
	case tea.KeyPressMsg:
		m.notice = ""
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !m.screenHandlesEscape() {
				if m.router.Depth() > 1 {
					return m, router.Pop()
				}
				return m, nil
			}
		}
	}
	return m, m.router.Update(msg)
}

func (m Model) screenHandlesEscape() bool {
	h, ok := m.router.Active().(screen.EscapeHandler)
	return ok && h.HandlesEscape()
}

func (m Model) chrome() layout.Chrome {
	active := m.router.Active()
	c := layout.Chrome{
		Title:  active.Title(),
		Stats:  layout.HeaderStats{Streak: m.deps.Progress.Streak(), DaysLeft: m.deps.DaysToExam()},
		Notice: m.notice,
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		c.Hints = p.KeyHints()
	}
	if c.Hints == nil {
		c.Hints = rootHints
		if m.router.Depth() > 1 {
			c.Hints = nestedHints
		}
	}
	return c
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width > 0 && m.height > 0 {
		v.SetContent(m.chrome().Render(m.width, m.height, m.router.View))
	}
	return v
}

// Run blocks until the user quits, then closes every open screen.
func Run(deps *screen.Deps) error {
	m := New(deps)
	defer m.router.Close()

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
