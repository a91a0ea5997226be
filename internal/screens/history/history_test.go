package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/revquiz/internal/store"
)

type fakeSource struct {
	sessions []store.SessionEvent
	err      error
	opts     store.QueryOpts
}

func (f *fakeSource) QuerySessionEvents(_ context.Context, opts store.QueryOpts) ([]store.SessionEvent, error) {
	f.opts = opts
	return f.sessions, f.err
}

func event(mode string, chapter, score, total int) store.SessionEvent {
	return store.SessionEvent{
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		SessionEventData: store.SessionEventData{
			Mode: mode, Chapter: chapter, Score: score, Total: total, Mistakes: total - score, DurationSecs: 125,
		},
	}
}

func load(t *testing.T, src *fakeSource) *HistoryScreen {
	t.Helper()
	s := New(src)
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
	return s
}

var (
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	up    = tea.KeyPressMsg{Code: tea.KeyUp}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func TestHistory_Loading(t *testing.T) {
	s := New(&fakeSource{})
	assert.Contains(t, s.View(100, 30), "Loading")
}

func TestHistory_Empty(t *testing.T) {
	src := &fakeSource{}
	s := load(t, src)
	assert.Equal(t, pageSize, src.opts.Limit)
	assert.Contains(t, s.View(100, 30), "No sessions yet")
	assert.Len(t, s.KeyHints(), 1)
}

func TestHistory_Error(t *testing.T) {
	s := load(t, &fakeSource{err: errors.New("disk gone")})
	assert.Contains(t, s.View(100, 30), "disk gone")
}

func TestHistory_NavigateAndExpand(t *testing.T) {
	s := load(t, &fakeSource{sessions: []store.SessionEvent{
		event("chapter", 4, 8, 10),
		event("audio", 0, 15, 20),
	}})

	view := s.View(100, 30)
	assert.Contains(t, view, "2 sessions")
	assert.Contains(t, view, "23/30 answered correctly")
	assert.Contains(t, view, "best 80%")
	assert.Contains(t, view, "▸ ")
	assert.Contains(t, view, "Chapter 4")
	assert.Contains(t, view, "Audio Mock Exam")

	s.Update(up)
	assert.Equal(t, 0, s.cursor)
	s.Update(down)
	s.Update(down)
	assert.Equal(t, 1, s.cursor, "stays on the last row")

	s.Update(enter)
	assert.Equal(t, 1, s.open)
	assert.Contains(t, s.View(100, 30), "5 mistake(s) · 2:05")

	s.Update(enter)
	assert.Equal(t, -1, s.open)
}

func TestModeLabel(t *testing.T) {
	assert.Equal(t, "Chapter 3", modeLabel(event("chapter", 3, 0, 0).SessionEventData))
	assert.Equal(t, "Mock Exam", modeLabel(event("standard", 0, 0, 0).SessionEventData))
	assert.Equal(t, "legacy", modeLabel(event("legacy", 0, 0, 0).SessionEventData))
}
