// Package history lists completed sessions from the event log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/store"
	"github.com/abhisek/revquiz/internal/ui/components"
	"github.com/abhisek/revquiz/internal/ui/layout"
	"github.com/abhisek/revquiz/internal/ui/theme"
)

// pageSize is how many sessions are loaded.
const pageSize = 50

// Source reads the session history.
type Source interface {
	QuerySessionEvents(ctx context.Context, opts store.QueryOpts) ([]store.SessionEvent, error)
}

type loadedMsg struct {
	sessions []store.SessionEvent
	err      error
}

// HistoryScreen shows past sessions newest first. Enter toggles the details
// of the selected one.
type HistoryScreen struct {
	src      Source
	sessions []store.SessionEvent
	cursor   int
	open     int // index with details shown, or -1
	offset   int
	loading  bool
	err      error
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(src Source) *HistoryScreen {
	return &HistoryScreen{src: src, open: -1, loading: true}
}

func (s *HistoryScreen) Init() tea.Cmd {
	src := s.src
	return func() tea.Msg {
		sessions, err := src.QuerySessionEvents(context.Background(), store.QueryOpts{Limit: pageSize})
		return loadedMsg{sessions: sessions, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if len(s.sessions) == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loading = false
		s.sessions, s.err = msg.sessions, msg.err
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.cursor = max(0, s.cursor-1)
		case "down", "j":
			s.cursor = max(0, min(s.cursor+1, len(s.sessions)-1))
		case "enter", "space":
			if s.open == s.cursor {
				s.open = -1
			} else if len(s.sessions) > 0 {
				s.open = s.cursor
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return components.Message("Could not load history: "+s.err.Error(), theme.Incorrect, width, height)
	case s.loading:
		return components.Message("Loading history…", theme.Dim, width, height)
	case len(s.sessions) == 0:
		return components.Message("No sessions yet. Finish a quiz to see it here.", theme.Hint, width, height)
	}

	cw := components.ContentWidth(width)
	head := summary(s.sessions, cw)

	var b strings.Builder
	selectedLine := 0
	for i, ev := range s.sessions {
		if i == s.cursor {
			selectedLine = strings.Count(b.String(), "\n")
		}
		b.WriteString(row(ev, i == s.cursor) + "\n")
		if i == s.open {
			b.WriteString(theme.Dim.Render(details(ev)) + "\n")
		}
	}
	list := strings.TrimRight(b.String(), "\n")

	rows := max(1, height-lipgloss.Height(head)-2)
	// Keep the cursor on screen.
	if selectedLine < s.offset {
		s.offset = selectedLine
	} else if selectedLine >= s.offset+rows {
		s.offset = selectedLine - rows + 1
	}
	visible, offset := layout.Window(list, s.offset, rows)
	s.offset = offset
	return components.Centered(head+"\n\n"+visible, width, height)
}

func summary(sessions []store.SessionEvent, cw int) string {
	var answered, correct, best int
	for _, ev := range sessions {
		answered += ev.Total
		correct += ev.Score
		best = max(best, percent(ev))
	}
	avg := 0
	if answered > 0 {
		avg = correct * 100 / answered
	}
	text := theme.Heading.Render(fmt.Sprintf("%d sessions", len(sessions))) + "\n" +
		theme.Body.Render(fmt.Sprintf("%d/%d answered correctly · best %d%%", correct, answered, best)) + "\n" +
		components.NewProgressBar("average", float64(avg)/100, true, min(cw-8, 40)).View()
	return theme.HighlightCard.Width(cw).Render(text)
}

func row(ev store.SessionEvent, selected bool) string {
	line := fmt.Sprintf("%-12s  %-16s  %3d/%-3d  %3d%%",
		ev.Timestamp.Local().Format("Jan 02 2006"), modeLabel(ev.SessionEventData), ev.Score, ev.Total, percent(ev))
	if selected {
		return theme.Selected.Render("▸ " + line)
	}
	return theme.Body.Render("  " + line)
}

func details(ev store.SessionEvent) string {
	return fmt.Sprintf("    %s · %d mistake(s) · %d:%02d",
		ev.Timestamp.Local().Format("15:04"), ev.Mistakes, ev.DurationSecs/60, ev.DurationSecs%60)
}

func percent(ev store.SessionEvent) int {
	if ev.Total <= 0 {
		return 0
	}
	return ev.Score * 100 / ev.Total
}

// modeLabel names the session for display. Unknown modes from older
// databases are shown as stored.
func modeLabel(ev store.SessionEventData) string {
	mode, err := session.ParseMode(ev.Mode)
	switch {
	case err != nil:
		return ev.Mode
	case mode == session.ModeChapterQuiz && ev.Chapter > 0:
		return fmt.Sprintf("Chapter %d", ev.Chapter)
	default:
		return mode.Label()
	}
}
