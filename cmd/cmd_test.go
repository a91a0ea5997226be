package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/revquiz/internal/revision"
	"github.com/abhisek/revquiz/internal/store"
)

func sampleMistakes() []revision.MistakeRecord {
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return []revision.MistakeRecord{
		{ID: "a", Question: "q1", UserAnswer: "x", CorrectAnswer: "y", Reference: "3:16", Chapter: 3, Date: at},
		{ID: "b", Question: "q2", UserAnswer: revision.UnknownAnswerLabel, CorrectAnswer: "z", Reference: "5:1", Chapter: 5, Date: at},
		{ID: "c", Question: "q3", UserAnswer: "x", CorrectAnswer: "w", Reference: "3:2", Chapter: 3, Date: at},
	}
}

func TestWriteMistakes_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMistakes(&buf, sampleMistakes(), "json"))

	var got mistakeExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got.Mistakes, 3)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, 3, got.Analysis.WeakestChapter)
	assert.Equal(t, 2, got.Analysis.WeakestChapterCount)
	assert.Contains(t, buf.String(), `"scriptureReference": "3:16"`)
}

func TestWriteMistakes_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMistakes(&buf, sampleMistakes(), "yaml"))

	var got mistakeExport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got.Mistakes, 3)
	assert.Equal(t, revision.UnknownAnswerLabel, got.Mistakes[1].UserAnswer)
	assert.Contains(t, buf.String(), "weakest_chapter: 3")
}

func TestWriteMistakes_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMistakes(&buf, nil, "json"))
	assert.JSONEq(t, `{"mistakes": []}`, buf.String())
}

func TestWriteMistakes_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeMistakes(&buf, sampleMistakes(), "csv")
	assert.ErrorContains(t, err, "unsupported format")
	assert.Zero(t, buf.Len())
}

func TestFilterChapter(t *testing.T) {
	all := sampleMistakes()
	assert.Len(t, filterChapter(all, 0), 3)
	assert.Len(t, filterChapter(all, 3), 2)
	assert.Empty(t, filterChapter(all, 9))
}

func TestEventFilter(t *testing.T) {
	events := []store.LLMRequestEvent{
		{ID: 1, LLMRequestEventData: store.LLMRequestEventData{Purpose: "mock-exam", Success: true}},
		{ID: 2, LLMRequestEventData: store.LLMRequestEventData{Purpose: "chapter-context", Success: false}},
		{ID: 3, LLMRequestEventData: store.LLMRequestEventData{Purpose: "mock-exam", Success: false}},
		{ID: 4, LLMRequestEventData: store.LLMRequestEventData{Purpose: "mock-exam", Success: true}},
	}

	assert.Len(t, eventFilter{}.apply(events, 2), 4, "an inactive filter keeps the query's own limit")

	got := eventFilter{purpose: "mock-exam"}.apply(events, 2)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)

	assert.Len(t, eventFilter{purpose: "mock-exam"}.apply(events, 0), 3)

	failed := eventFilter{failedOnly: true}.apply(events, 0)
	require.Len(t, failed, 2)
	assert.Equal(t, 2, failed[0].ID)

	both := eventFilter{purpose: "mock-exam", failedOnly: true}.apply(events, 0)
	require.Len(t, both, 1)
	assert.Equal(t, 3, both[0].ID)
}

func TestPrintModelCost(t *testing.T) {
	var buf bytes.Buffer
	printModelCost(&buf, []store.LLMUsage{
		{Model: "gemini-2.5-flash", Calls: 3, InputTokens: 1_000_000, OutputTokens: 200_000},
		{Model: "mock", Calls: 1},
	})

	out := buf.String()
	assert.Contains(t, out, "$0.80")
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "Pricing unavailable for: mock")
}

func TestWriteEventsJSON_OmitsPayloads(t *testing.T) {
	var buf bytes.Buffer
	err := writeEventsJSON(&buf, []store.LLMRequestEvent{{
		ID: 7,
		LLMRequestEventData: store.LLMRequestEventData{
			Model:        "gpt-4o-mini",
			Purpose:      "chapter-questions",
			RequestBody:  "secret prompt",
			ResponseBody: "raw output",
		},
	}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"purpose": "chapter-questions"`)
	assert.NotContains(t, buf.String(), "secret prompt")
}

func TestSummarizeSessions(t *testing.T) {
	events := []store.SessionEvent{
		{SessionEventData: store.SessionEventData{Mode: "chapter", Total: 10, Score: 7, DurationSecs: 60}},
		{SessionEventData: store.SessionEventData{Mode: "audio", Total: 20, Score: 10, DurationSecs: 300}},
		{SessionEventData: store.SessionEventData{Mode: "chapter", Total: 10, Score: 9, DurationSecs: 90}},
		{SessionEventData: store.SessionEventData{Mode: "legacy", Total: 0}},
	}

	rows := summarizeSessions(events)
	require.Len(t, rows, 3)

	assert.Equal(t, "Chapter Quiz", rows[0].label)
	assert.Equal(t, 2, rows[0].count)
	assert.Equal(t, 20, rows[0].total)
	assert.InDelta(t, 80.0, rows[0].accuracy(), 0.001)
	assert.Equal(t, 150*time.Second, rows[0].duration)

	assert.Equal(t, "Audio Mock Exam", rows[1].label)
	assert.InDelta(t, 50.0, rows[1].accuracy(), 0.001)

	assert.Equal(t, "legacy", rows[2].label)
	assert.Zero(t, rows[2].accuracy())
}
