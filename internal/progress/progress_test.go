package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/revquiz/internal/revision"
	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/store"
	"github.com/abhisek/revquiz/internal/streak"
)

type fakeHistory struct {
	events []store.SessionEventData
	err    error
}

func (f *fakeHistory) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, data)
	return nil
}

func runSession(t *testing.T, mode session.Mode, chapter int, picks []int, now time.Time) *session.Result {
	t.Helper()
	qs := make([]session.Question, len(picks))
	for i := range qs {
		qs[i] = session.Question{
			ID:           i + 1,
			Text:         "question",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 0,
			Reference:    "வெளி 1:1",
			Chapter:      i + 1,
		}
	}
	s, err := session.New(mode, chapter, qs, session.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	s.Start()
	for _, p := range picks {
		if mode == session.ModeAudioMock {
			s.RevealEarly()
			s.SelfGrade(p == 0)
			continue
		}
		s.SelectOption(p)
		s.Submit()
		s.Advance()
	}
	require.Equal(t, session.PhaseComplete, s.Phase())
	return s.Result()
}

func TestComplete_RecordsMistakesStreakAndHistory(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	hist := &fakeHistory{}
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.Local)

	st := Load(ctx, Deps{KV: kv, History: hist, Now: func() time.Time { return now }})
	require.Equal(t, 0, st.Streak())
	require.Nil(t, st.Analysis())

	c := st.Complete(ctx, runSession(t, session.ModeChapterQuiz, 4, []int{0, 1, 2}, now))
	require.NoError(t, c.Err)
	assert.Len(t, c.NewMistakes, 2)
	assert.Equal(t, 1, c.Streak)
	assert.Equal(t, 1, st.Streak())

	a := st.Analysis()
	require.NotNil(t, a)
	assert.Equal(t, 2, a.Total)
	assert.Equal(t, 4, a.WeakestChapter)

	require.Len(t, hist.events, 1)
	assert.Equal(t, "chapter", hist.events[0].Mode)
	assert.Equal(t, 1, hist.events[0].Score)
	assert.Equal(t, 2, hist.events[0].Mistakes)

	// A second session the same day adds mistakes but not streak.
	c = st.Complete(ctx, runSession(t, session.ModeAudioMock, 0, []int{0, 1}, now.Add(time.Hour)))
	require.NoError(t, c.Err)
	assert.Equal(t, 1, c.Streak)
	require.Len(t, c.NewMistakes, 1)
	assert.Equal(t, revision.UnknownAnswerLabel, c.NewMistakes[0].UserAnswer)
	assert.Equal(t, 2, c.NewMistakes[0].Chapter)
	assert.Len(t, st.Mistakes(), 3)

	// Everything survives a reload.
	reloaded := Load(ctx, Deps{KV: kv, Now: func() time.Time { return now.AddDate(0, 0, 1) }})
	assert.Equal(t, 1, reloaded.Streak())
	assert.Len(t, reloaded.Mistakes(), 3)
}

func TestComplete_PersistenceErrorsAreReported(t *testing.T) {
	ctx := context.Background()
	hist := &fakeHistory{err: errors.New("db locked")}
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)
	st := Load(ctx, Deps{KV: store.NewMemoryKV(), History: hist, Now: func() time.Time { return now }})

	c := st.Complete(ctx, runSession(t, session.ModeStandard, 0, []int{3}, now))
	require.Error(t, c.Err)
	assert.Contains(t, c.Err.Error(), "db locked")
	assert.Len(t, st.Mistakes(), 1, "mistakes are kept in memory")
	assert.Equal(t, 1, st.Streak())
}

func TestClearMistakes(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)
	st := Load(ctx, Deps{KV: kv, Now: func() time.Time { return now }})
	st.Complete(ctx, runSession(t, session.ModeStandard, 0, []int{3}, now))

	require.NoError(t, st.ClearMistakes(ctx))
	assert.Nil(t, st.Analysis())
	_, ok, _ := kv.Get(ctx, revision.Key)
	assert.False(t, ok)

	// The streak is independent of the mistake log.
	_, ok, _ = kv.Get(ctx, streak.CountKey)
	assert.True(t, ok)
}
