package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/revquiz/internal/llm"
)

func questionSetJSON() json.RawMessage {
	return json.RawMessage(`{
		"questions": [
			{
				"question": "ஏழு நட்சத்திரங்களை வலது கையில் பிடித்திருப்பவர் யார்?",
				"options": ["இயேசு கிறிஸ்து", "யோவான்", "மிகாவேல்", "பேதுரு"],
				"correctAnswerIndex": 0,
				"scriptureReference": "1:16",
				"chapter": 1
			},
			{
				"question": "யோவான் எந்தத் தீவில் இருந்தார்?",
				"options": ["கிரேத்தா", "பத்மு", "சீப்புரு", "மெலித்தா"],
				"correctAnswerIndex": 1,
				"scriptureReference": "1:9",
				"chapter": 1
			}
		]
	}`)
}

func TestChapterQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionSetJSON()})
	p := New(mock, DefaultConfig(), nil)

	qs, err := p.ChapterQuestions(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	for i, q := range qs {
		if q.ID != i {
			t.Errorf("question %d: expected ID %d, got %d", i, i, q.ID)
		}
		if q.Chapter != 1 {
			t.Errorf("question %d: expected chapter 1, got %d", i, q.Chapter)
		}
	}
	if qs[1].CorrectOption() != "பத்மு" {
		t.Errorf("unexpected correct option %q", qs[1].CorrectOption())
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != QuestionSetSchema {
		t.Error("expected question set schema")
	}
	if !strings.Contains(req.Messages[0].Content, "chapter 1") {
		t.Errorf("prompt does not name the chapter: %s", req.Messages[0].Content)
	}
	if !strings.Contains(req.Messages[0].Content, "between 15 and 20") {
		t.Errorf("prompt does not bound the question count: %s", req.Messages[0].Content)
	}
}

func TestChapterQuestions_ForcesChapter(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"questions": [{
			"question": "Q",
			"options": ["a", "b", "c", "d"],
			"correctAnswerIndex": 2,
			"scriptureReference": "5:1",
			"chapter": 9
		}]
	}`)})
	p := New(mock, DefaultConfig(), nil)

	qs, err := p.ChapterQuestions(context.Background(), 5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qs[0].Chapter != 5 {
		t.Errorf("expected chapter 5, got %d", qs[0].Chapter)
	}
}

func TestChapterQuestions_DropsInvalid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"questions": [
			{"question": "three options", "options": ["a", "b", "c"], "correctAnswerIndex": 0, "scriptureReference": "2:1", "chapter": 2},
			{"question": "bad index", "options": ["a", "b", "c", "d"], "correctAnswerIndex": 4, "scriptureReference": "2:2", "chapter": 2},
			{"question": "repeated options", "options": ["a", "a", "c", "d"], "correctAnswerIndex": 0, "scriptureReference": "2:3", "chapter": 2},
			{"question": "good", "options": ["a", "b", "c", "d"], "correctAnswerIndex": 3, "scriptureReference": "2:4", "chapter": 2},
			{"question": "Good ", "options": ["a", "b", "c", "d"], "correctAnswerIndex": 3, "scriptureReference": "2:4", "chapter": 2}
		]
	}`)})
	p := New(mock, DefaultConfig(), nil)

	qs, err := p.ChapterQuestions(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 surviving question, got %d", len(qs))
	}
	if qs[0].Text != "good" || qs[0].ID != 0 {
		t.Errorf("unexpected question %+v", qs[0])
	}
}

func TestChapterQuestions_CapsAtCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionSetJSON()})
	p := New(mock, DefaultConfig(), nil)

	qs, err := p.ChapterQuestions(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
}

func TestChapterQuestions_Empty(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions": []}`)})
	p := New(mock, DefaultConfig(), nil)

	_, err := p.ChapterQuestions(context.Background(), 3, 10)
	if !errors.Is(err, ErrEmptyQuestionSet) {
		t.Fatalf("expected ErrEmptyQuestionSet, got %v", err)
	}
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestChapterQuestions_BadChapter(t *testing.T) {
	mock := llm.NewMockProvider()
	p := New(mock, DefaultConfig(), nil)

	for _, ch := range []int{0, 23, -1} {
		if _, err := p.ChapterQuestions(context.Background(), ch, 10); !errors.Is(err, ErrFetch) {
			t.Errorf("chapter %d: expected ErrFetch, got %v", ch, err)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no LLM calls, got %d", mock.CallCount())
	}
}

func TestChapterQuestions_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	p := New(mock, DefaultConfig(), nil)

	_, err := p.ChapterQuestions(context.Background(), 1, 10)
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestChapterQuestions_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions": "nope"}`)})
	p := New(mock, DefaultConfig(), nil)

	if _, err := p.ChapterQuestions(context.Background(), 1, 10); !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestMockExamQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"questions": [
			{"question": "one", "options": ["a", "b", "c", "d"], "correctAnswerIndex": 0, "scriptureReference": "13:18", "chapter": 13},
			{"question": "two", "options": ["a", "b", "c", "d"], "correctAnswerIndex": 1, "scriptureReference": "?", "chapter": 40}
		]
	}`)})
	p := New(mock, DefaultConfig(), nil)

	qs, err := p.MockExamQuestions(context.Background(), 25, StyleAudio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].Chapter != 13 {
		t.Errorf("expected chapter 13, got %d", qs[0].Chapter)
	}
	if qs[1].Chapter != 0 {
		t.Errorf("expected out-of-range chapter to normalize to 0, got %d", qs[1].Chapter)
	}

	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "exactly 25 questions") {
		t.Errorf("prompt does not request the count: %s", msg)
	}
	if !strings.Contains(msg, "SHORT and DIRECT") {
		t.Errorf("audio prompt missing brevity instruction: %s", msg)
	}
}

func TestMockExamQuestions_StandardPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionSetJSON()})
	p := New(mock, DefaultConfig(), nil)

	if _, err := p.MockExamQuestions(context.Background(), 25, StyleStandard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := mock.Calls[0].Messages[0].Content
	if strings.Contains(msg, "SHORT and DIRECT") {
		t.Error("standard prompt should not carry the audio instruction")
	}
	if mock.Calls[0].System != examSystemPrompt {
		t.Error("expected examiner system prompt")
	}
}

func TestChapterContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"title": "பத்மு தீவின் தரிசனம்",
		"summary": "யோவான் தரிசனம் கண்டார்.",
		"keyVerses": ["1:8"],
		"hints": ["ஏழு சபைகள்"],
		"flashcards": [{"front": "ஏழு நட்சத்திரங்கள்", "back": "ஏழு சபைகளின் தூதர்கள்"}],
		"fullText": [{"number": 1, "text": "இயேசு கிறிஸ்துவின் வெளிப்படுத்தல்."}],
		"commentary": {
			"culturalContext": "ரோம சாம்ராஜ்யம்",
			"interpretations": [{"verseRef": "1-3", "explanation": "முன்னுரை", "crossReferences": ["தானி 7:13"]}]
		}
	}`)})
	p := New(mock, DefaultConfig(), nil)

	cc, err := p.ChapterContext(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cc.Chapter != 1 {
		t.Errorf("expected chapter 1, got %d", cc.Chapter)
	}
	if cc.Title != "பத்மு தீவின் தரிசனம்" {
		t.Errorf("unexpected title %q", cc.Title)
	}
	if len(cc.Flashcards) != 1 || len(cc.FullText) != 1 {
		t.Errorf("unexpected material: %+v", cc)
	}
	if got := cc.Commentary.Interpretations[0].CrossReferences; len(got) != 1 {
		t.Errorf("unexpected cross references %v", got)
	}
	if mock.Calls[0].Schema != ChapterContextSchema {
		t.Error("expected chapter context schema")
	}
}

func TestChapterContext_MissingListsAreEmpty(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"title": "t", "summary": "s"}`)})
	p := New(mock, DefaultConfig(), nil)

	cc, err := p.ChapterContext(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cc.Hints == nil || cc.Flashcards == nil || cc.FullText == nil || cc.KeyVerses == nil {
		t.Errorf("expected empty, non-nil lists: %+v", cc)
	}
}
