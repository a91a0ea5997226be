package chapters

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/revquiz/internal/progress"
	"github.com/abhisek/revquiz/internal/router"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/screens/study"
	"github.com/abhisek/revquiz/internal/store"
)

func newScreen(t *testing.T) *ChaptersScreen {
	t.Helper()
	p := progress.Load(context.Background(), progress.Deps{KV: store.NewMemoryKV()})
	s := New(&screen.Deps{Progress: p})
	s.Init()
	return s
}

func TestChapters_Navigation(t *testing.T) {
	s := newScreen(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if got := s.Chapter(); got != 8 {
		t.Errorf("expected chapter 8, got %d", got)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if got := s.Chapter(); got != 6 {
		t.Errorf("expected chapter 6, got %d", got)
	}

	// Moving past the grid is a no-op.
	for range 10 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if got := s.Chapter(); got != 18 {
		t.Errorf("expected chapter 18, got %d", got)
	}
}

func TestChapters_TypedChapterOpensStudy(t *testing.T) {
	s := newScreen(t)

	s.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	s.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if got := s.Chapter(); got != 12 {
		t.Fatalf("expected typed chapter 12, got %d", got)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected navigation")
	}
	msg, ok := cmd().(router.NavMsg)
	if !ok || msg.Op != router.OpPush {
		t.Fatalf("expected a push, got %#v", cmd())
	}
	st, ok := msg.Screen.(*study.StudyScreen)
	if !ok {
		t.Fatalf("expected study screen, got %T", msg.Screen)
	}
	if st.Title() != "Chapter 12" {
		t.Errorf("unexpected title %q", st.Title())
	}
}

func TestChapters_OutOfRangeIgnored(t *testing.T) {
	s := newScreen(t)

	s.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	s.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("chapter 99 must not open")
	}
	if got := s.Chapter(); got != 1 {
		t.Errorf("expected the input cleared, got chapter %d", got)
	}
}

func TestChapters_LettersIgnored(t *testing.T) {
	s := newScreen(t)
	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if _, ok := s.input.Value(); ok {
		t.Error("letters must not reach the input")
	}
}
