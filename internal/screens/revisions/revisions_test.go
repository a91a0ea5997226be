package revisions

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/revquiz/internal/progress"
	"github.com/abhisek/revquiz/internal/revision"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/store"
)

func depsWithMistakes(t *testing.T) *screen.Deps {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	p := progress.Load(ctx, progress.Deps{KV: kv})

	qs := []session.Question{
		{Text: "first", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0, Reference: "2:1", Chapter: 2},
		{Text: "second", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0, Reference: "3:1", Chapter: 3},
	}
	p.Complete(ctx, &session.Result{
		SessionID:   "s1",
		Mode:        session.ModeStandard,
		Questions:   qs,
		Answers:     []int{1, 2},
		Correct:     []bool{false, false},
		CompletedAt: time.Now(),
	})
	return &screen.Deps{Progress: p}
}

func TestRevisionScreen_NewestFirst(t *testing.T) {
	s := New(depsWithMistakes(t))
	s.Init()

	if len(s.mistakes) != 2 {
		t.Fatalf("expected 2 mistakes, got %d", len(s.mistakes))
	}
	if s.mistakes[0].Question != "second" {
		t.Errorf("expected newest first, got %q", s.mistakes[0].Question)
	}
	if s.analysis == nil || s.analysis.WeakestChapter != 2 {
		t.Errorf("expected weakest chapter 2 on a tie, got %+v", s.analysis)
	}

	view := s.View(100, 40)
	if !strings.Contains(view, "Weakest chapter: 2") {
		t.Errorf("view missing analysis:\n%s", view)
	}
}

func TestRevisionScreen_Clear(t *testing.T) {
	deps := depsWithMistakes(t)
	s := New(deps)
	s.Init()

	s.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	if !s.confirmClear || !s.HandlesEscape() {
		t.Fatal("expected clear confirmation")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.confirmClear {
		t.Fatal("Esc should cancel the confirmation")
	}
	if len(deps.Progress.Mistakes()) != 2 {
		t.Fatal("cancel must keep the mistakes")
	}

	s.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if len(deps.Progress.Mistakes()) != 0 || len(s.mistakes) != 0 {
		t.Errorf("expected empty log after clearing")
	}
	if s.analysis != nil {
		t.Errorf("expected no analysis after clearing")
	}
	if !strings.Contains(s.View(100, 40), "No mistakes") {
		t.Error("expected empty state")
	}
}

func TestRevisionScreen_UnknownAnswerShown(t *testing.T) {
	ctx := context.Background()
	p := progress.Load(ctx, progress.Deps{KV: store.NewMemoryKV()})
	p.Complete(ctx, &session.Result{
		Mode:        session.ModeAudioMock,
		Questions:   []session.Question{{Text: "q", Options: []string{"a", "b", "c", "d"}, Chapter: 5}},
		Answers:     []int{session.Unknown},
		Correct:     []bool{false},
		CompletedAt: time.Now(),
	})
	s := New(&screen.Deps{Progress: p})
	s.Init()

	if !strings.Contains(s.View(100, 40), revision.UnknownAnswerLabel) {
		t.Error("expected the unknown answer label")
	}
}
