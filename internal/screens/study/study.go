// Package study shows a chapter's study material and launches its quiz.
package study

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/revquiz/internal/content"
	"github.com/abhisek/revquiz/internal/router"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/screens/quiz"
	"github.com/abhisek/revquiz/internal/ui/components"
	"github.com/abhisek/revquiz/internal/ui/layout"
	"github.com/abhisek/revquiz/internal/ui/theme"
)

// Tab is a section of the study screen.
type Tab int

const (
	TabStory Tab = iota
	TabVerses
	TabFlashcards
	TabCommentary
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabStory:
		return "Story"
	case TabVerses:
		return "Verses"
	case TabFlashcards:
		return "Flashcards"
	case TabCommentary:
		return "Commentary"
	default:
		return fmt.Sprintf("tab(%d)", int(t))
	}
}

type contextLoadedMsg struct {
	Chapter int
	Context *content.ChapterContext
	Err     error
}

// StudyScreen displays the study material of one chapter.
type StudyScreen struct {
	deps    *screen.Deps
	chapter int
	cancel  context.CancelFunc

	material *content.ChapterContext
	loading  bool

	tab     Tab
	offset  int
	card    int
	flipped bool
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.Closer = (*StudyScreen)(nil)

// New creates a StudyScreen for chapter.
func New(deps *screen.Deps, chapter int) *StudyScreen {
	return &StudyScreen{deps: deps, chapter: chapter}
}

func (s *StudyScreen) Init() tea.Cmd {
	if s.material != nil || s.loading || s.deps.Content == nil {
		return nil
	}
	return s.load()
}

func (s *StudyScreen) load() tea.Cmd {
	s.Close()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.loading = true

	provider := s.deps.Content
	chapter := s.chapter
	return func() tea.Msg {
		cc, err := provider.ChapterContext(ctx, chapter)
		return contextLoadedMsg{Chapter: chapter, Context: cc, Err: err}
	}
}

// Close cancels an in-flight fetch.
func (s *StudyScreen) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *StudyScreen) Title() string {
	return fmt.Sprintf("Chapter %d", s.chapter)
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Section"},
		{Key: "↑↓", Description: "Scroll"},
	}
	if s.tab == TabFlashcards {
		hints = []layout.KeyHint{
			{Key: "Tab", Description: "Section"},
			{Key: "Space", Description: "Flip"},
			{Key: "←→", Description: "Card"},
		}
	}
	return append(hints,
		layout.KeyHint{Key: "Q", Description: "Start quiz"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contextLoadedMsg:
		if msg.Chapter != s.chapter {
			return s, nil
		}
		s.loading = false
		s.cancel = nil
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return s, nil
			}
			s.deps.Log().Warn("chapter context fetch failed", zap.Int("chapter", s.chapter), zap.Error(msg.Err))
			return s, router.Back(fmt.Sprintf("Could not load chapter %d: %v", s.chapter, msg.Err))
		}
		s.material = msg.Context
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *StudyScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "q", "Q":
		if s.deps.Content == nil {
			return s, nil
		}
		return s, router.Push(quiz.NewChapter(s.deps, s.chapter))
	}

	if s.material == nil {
		return s, nil
	}

	switch key {
	case "tab":
		s.setTab((s.tab + 1) % tabCount)
	case "shift+tab":
		s.setTab((s.tab + tabCount - 1) % tabCount)
	case "1", "2", "3", "4":
		s.setTab(Tab(key[0] - '1'))
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

	if s.tab == TabFlashcards && len(s.material.Flashcards) > 0 {
		switch key {
		case "space", "enter":
			s.flipped = !s.flipped
		case "right", "l", "n":
			if s.card < len(s.material.Flashcards)-1 {
				s.card++
				s.flipped = false
			}
		case "left", "h", "p":
			if s.card > 0 {
				s.card--
				s.flipped = false
			}
		}
	}
	return s, nil
}

func (s *StudyScreen) setTab(t Tab) {
	s.tab = t
	s.offset = 0
}

func (s *StudyScreen) View(width, height int) string {
	switch {
	case s.deps.Content == nil:
		return components.Message("Study material needs an LLM provider.", theme.Hint, width, height)
	case s.material == nil:
		return components.Message(fmt.Sprintf("Preparing chapter %d...", s.chapter), theme.Hint, width, height)
	}

	cw := components.ContentWidth(width)
	tabs := renderTabs(s.tab)
	bodyHeight := max(1, height-4)

	var body string
	switch s.tab {
	case TabStory:
		body = renderStory(s.material, cw)
	case TabVerses:
		body = renderVerses(s.material, cw)
	case TabFlashcards:
		body = renderFlashcard(s.material.Flashcards, s.card, s.flipped, cw)
	case TabCommentary:
		body = renderCommentary(s.material, cw)
	}

	visible, offset := layout.Window(body, s.offset, bodyHeight)
	s.offset = offset

	return components.Centered(tabs+"\n\n"+visible, width, height)
}
