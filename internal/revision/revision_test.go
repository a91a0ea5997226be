package revision

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/store"
)

func questions(correct ...int) []session.Question {
	qs := make([]session.Question, len(correct))
	for i, c := range correct {
		qs[i] = session.Question{
			ID:           i + 1,
			Text:         fmt.Sprintf("Q%d", i+1),
			Options:      []string{"opt0", "opt1", "opt2", "opt3"},
			CorrectIndex: c,
			Reference:    fmt.Sprintf("வெளி %d:1", i+5),
			Chapter:      i + 5,
		}
	}
	return qs
}

var at = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func TestDeriveMistakes_ChapterQuiz(t *testing.T) {
	qs := questions(0, 1, 2)
	got := DeriveMistakes(qs, []int{0, 3, 1}, session.ModeChapterQuiz, 7, at)

	if len(got) != len(qs)-session.Grade(qs, []int{0, 3, 1}) {
		t.Fatalf("got %d mistakes, want %d", len(got), 2)
	}
	m := got[0]
	if m.Question != "Q2" || m.UserAnswer != "opt3" || m.CorrectAnswer != "opt1" {
		t.Errorf("mistake = %+v", m)
	}
	if m.Chapter != 7 {
		t.Errorf("chapter = %d, want session chapter 7", m.Chapter)
	}
	if m.Reference != "வெளி 6:1" || !m.Date.Equal(at) {
		t.Errorf("reference/date = %q/%v", m.Reference, m.Date)
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Errorf("ids not unique: %q, %q", got[0].ID, got[1].ID)
	}
}

func TestDeriveMistakes_MockUsesQuestionChapter(t *testing.T) {
	qs := questions(0, 1)
	got := DeriveMistakes(qs, []int{2, 2}, session.ModeStandard, 1, at)
	if len(got) != 2 {
		t.Fatalf("got %d mistakes, want 2", len(got))
	}
	if got[0].Chapter != 5 || got[1].Chapter != 6 {
		t.Errorf("chapters = %d, %d; want 5, 6", got[0].Chapter, got[1].Chapter)
	}
}

func TestDeriveMistakes_AudioUsesUnknownLabel(t *testing.T) {
	qs := questions(0, 1, 2)
	got := DeriveMistakes(qs, []int{0, session.Unknown, session.Unknown}, session.ModeAudioMock, 0, at)
	if len(got) != 2 {
		t.Fatalf("got %d mistakes, want 2", len(got))
	}
	for _, m := range got {
		if m.UserAnswer != UnknownAnswerLabel {
			t.Errorf("user answer = %q, want unknown label", m.UserAnswer)
		}
	}
}

func TestDeriveMistakes_MissingAnswers(t *testing.T) {
	qs := questions(0, 1)
	got := DeriveMistakes(qs, []int{0}, session.ModeChapterQuiz, 2, at)
	if len(got) != 1 || got[0].UserAnswer != UnknownAnswerLabel {
		t.Errorf("mistakes = %+v, want one with unknown label", got)
	}
}

func TestLog_AppendAndReload(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	l := Load(ctx, kv, nil)
	if l.Len() != 0 {
		t.Fatalf("fresh log has %d records", l.Len())
	}

	first := DeriveMistakes(questions(0), []int{1}, session.ModeChapterQuiz, 1, at)
	second := DeriveMistakes(questions(0, 0), []int{1, 2}, session.ModeChapterQuiz, 2, at)
	if err := l.Append(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(ctx, second); err != nil {
		t.Fatal(err)
	}

	reloaded := Load(ctx, kv, nil)
	if reloaded.Len() != 3 {
		t.Fatalf("reloaded %d records, want 3", reloaded.Len())
	}
	if reloaded.Records()[0].ID != first[0].ID {
		t.Error("append must preserve earlier records in order")
	}
	if !reloaded.Records()[2].Date.Equal(at) {
		t.Errorf("date = %v, want %v", reloaded.Records()[2].Date, at)
	}
}

func TestLog_CorruptFailsOpen(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	kv.Set(ctx, Key, "{not json")

	l := Load(ctx, kv, nil)
	if l.Len() != 0 {
		t.Errorf("corrupt log loaded %d records, want 0", l.Len())
	}
	if _, err := Parse("{not json"); !errors.Is(err, ErrParse) {
		t.Errorf("Parse err = %v, want ErrParse", err)
	}
}

type failingKV struct{ *store.MemoryKV }

func (failingKV) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestLog_PersistFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	l := Load(ctx, failingKV{store.NewMemoryKV()}, nil)

	err := l.Append(ctx, DeriveMistakes(questions(0), []int{1}, session.ModeChapterQuiz, 1, at))
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if l.Len() != 1 {
		t.Errorf("in-memory log has %d records, want 1", l.Len())
	}
}

func TestLog_Clear(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	l := Load(ctx, kv, nil)
	l.Append(ctx, DeriveMistakes(questions(0), []int{1}, session.ModeChapterQuiz, 3, at))

	if err := l.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if Analyze(l.Records()) != nil {
		t.Error("Analyze of a cleared log must be nil")
	}
	if _, ok, _ := kv.Get(ctx, Key); ok {
		t.Error("store still holds the mistake log after Clear")
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		chapters []int
		total    int
		weakest  int
		count    int
	}{
		{"single max", []int{3, 3, 5}, 3, 3, 2},
		{"tie picks lowest chapter", []int{9, 4, 9, 4}, 4, 4, 2},
		{"unknown chapter counted", []int{0, 0, 1}, 3, 0, 2},
		{"one record", []int{22}, 1, 22, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ms []MistakeRecord
			for _, ch := range tt.chapters {
				ms = append(ms, MistakeRecord{Chapter: ch})
			}
			a := Analyze(ms)
			if a == nil {
				t.Fatal("Analyze returned nil")
			}
			if a.Total != tt.total || a.WeakestChapter != tt.weakest || a.WeakestChapterCount != tt.count {
				t.Errorf("Analyze = {%d %d %d}, want {%d %d %d}",
					a.Total, a.WeakestChapter, a.WeakestChapterCount, tt.total, tt.weakest, tt.count)
			}
		})
	}

	if Analyze(nil) != nil {
		t.Error("Analyze(nil) must be nil")
	}
}

func TestNewest(t *testing.T) {
	ms := []MistakeRecord{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := Newest(ms)
	if got[0].ID != "c" || got[2].ID != "a" {
		t.Errorf("Newest order = %v", got)
	}
	if ms[0].ID != "a" {
		t.Error("Newest must not mutate its input")
	}
}
