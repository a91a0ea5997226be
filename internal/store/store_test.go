package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_Pragmas(t *testing.T) {
	db := openTestStore(t).DB()
	for pragma, want := range map[string]string{
		"journal_mode": "wal",
		"foreign_keys": "1",
		"synchronous":  "1",
	} {
		var got string
		require.NoError(t, db.QueryRow("PRAGMA "+pragma).Scan(&got))
		assert.Equal(t, want, got, pragma)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.EventRepo().AppendSessionEvent(ctx, SessionEventData{Mode: "audio", Total: 1}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.EventRepo().AppendSessionEvent(ctx, SessionEventData{Mode: "audio", Total: 2}))

	got, err := s.EventRepo().QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].Sequence)
}

func TestKV(t *testing.T) {
	ctx := context.Background()
	for name, kv := range map[string]KV{
		"sqlite": openTestStore(t).KV(),
		"memory": NewMemoryKV(),
	} {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set(ctx, "revquiz_streak", "3"))
			require.NoError(t, kv.Set(ctx, "revquiz_streak", "4"))
			v, ok, err := kv.Get(ctx, "revquiz_streak")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "4", v)

			require.NoError(t, kv.Remove(ctx, "revquiz_streak"))
			_, ok, _ = kv.Get(ctx, "revquiz_streak")
			assert.False(t, ok)
			assert.NoError(t, kv.Remove(ctx, "revquiz_streak"), "removing an absent key")
		})
	}
}

func TestEvents_SharedSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{Mode: "chapter", Total: 10}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "p", Success: true}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{Mode: "chapter", Total: 10}))

	sessions, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	llm, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)

	require.Len(t, sessions, 2)
	require.Len(t, llm, 1)
	assert.Equal(t, int64(3), sessions[0].Sequence)
	assert.Equal(t, int64(2), llm[0].Sequence)
	assert.Equal(t, int64(1), sessions[1].Sequence)
}

func TestEvents_FailedInsertLeavesNoGap(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.Error(t, repo.AppendSessionEvent(ctx, SessionEventData{Total: 3}), "mode is required")
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{Mode: "chapter", Total: 3}))

	got, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Sequence)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "chapter-context", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "mock-exam", InputTokens: 200, OutputTokens: 1000, LatencyMs: 1100, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "mock-exam", LatencyMs: 300, ErrorMessage: "rate limited"},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Greater(t, got[0].Sequence, got[1].Sequence, "newest first")
	assert.False(t, got[0].Success)
	assert.Equal(t, "rate limited", got[0].ErrorMessage)

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	e, err := repo.GetLLMEvent(ctx, all[len(all)-1].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "req", e.RequestBody)
	assert.Equal(t, "resp", e.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsage{Purpose: "mock-exam", Calls: 2, InputTokens: 200, OutputTokens: 1000, AvgLatencyMs: 700}, byPurpose[1])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, "gemini-2.5-flash", byModel[0].Model)
	assert.Equal(t, 3, byModel[0].Calls)
	assert.Equal(t, 1400, byModel[0].OutputTokens)
}

func TestSessionEvents_Filters(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := base
	s.events.now = func() time.Time { return clock }
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		clock = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: fmt.Sprintf("s%d", i),
			Mode:      "chapter",
			Chapter:   i,
			Total:     20,
			Score:     10 + i,
			Mistakes:  10 - i,
		}))
	}

	got, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].Chapter)
	assert.Equal(t, 13, got[0].Score)
	assert.WithinDuration(t, base.Add(3*time.Hour), got[0].Timestamp, time.Millisecond)

	after, err := repo.QuerySessionEvents(ctx, QueryOpts{After: got[1].Sequence})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "s3", after[0].SessionID)

	before, err := repo.QuerySessionEvents(ctx, QueryOpts{Before: got[1].Sequence})
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, "s1", before[0].SessionID)

	window, err := repo.QuerySessionEvents(ctx, QueryOpts{From: base.Add(2 * time.Hour), To: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "s2", window[0].SessionID)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{Mode: "exam", Total: 25}))
	require.NoError(t, s.KV().Set(ctx, "k", "v"))
	require.NoError(t, s.Reset(ctx))

	got, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, got)
	_, ok, _ := s.KV().Get(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{Mode: "exam", Total: 25}))
	got, err = repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Sequence, "the sequence survives a reset")
}

func TestDefaultDBPath(t *testing.T) {
	explicit := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("REVQUIZ_DB", explicit)
	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, explicit, got)
	assert.DirExists(t, filepath.Dir(explicit))

	dir := t.TempDir()
	t.Setenv("REVQUIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "revquiz", "revquiz.db"), got)
}
