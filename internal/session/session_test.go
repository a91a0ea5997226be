package session

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func testQuestions(correct ...int) []Question {
	qs := make([]Question, len(correct))
	for i, c := range correct {
		qs[i] = Question{
			ID:           i + 1,
			Text:         fmt.Sprintf("Question %d?", i+1),
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: c,
			Reference:    fmt.Sprintf("வெளிப்படுத்தின விசேஷம் 1:%d", i+1),
			Chapter:      i + 1,
		}
	}
	return qs
}

// recordingLifecycle records lifecycle calls in order.
type recordingLifecycle struct {
	calls []string
}

func (r *recordingLifecycle) Enter(p Presentation) {
	r.calls = append(r.calls, fmt.Sprintf("enter:%d:%d", p.Index, p.Token))
}
func (r *recordingLifecycle) Reveal() { r.calls = append(r.calls, "reveal") }
func (r *recordingLifecycle) Leave()  { r.calls = append(r.calls, "leave") }

func newStarted(t *testing.T, mode Mode, qs []Question, opts ...Option) *Session {
	t.Helper()
	s, err := New(mode, 3, qs, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.Start() {
		t.Fatal("Start returned false")
	}
	return s
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(ModeChapterQuiz, 1, nil); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("empty set: err = %v, want ErrNoQuestions", err)
	}

	bad := testQuestions(0)
	bad[0].Options = bad[0].Options[:3]
	if _, err := New(ModeStandard, 0, bad); !errors.Is(err, ErrInvalidQuestion) {
		t.Errorf("three options: err = %v, want ErrInvalidQuestion", err)
	}

	bad = testQuestions(4)
	if _, err := New(ModeStandard, 0, bad); !errors.Is(err, ErrInvalidQuestion) {
		t.Errorf("index 4: err = %v, want ErrInvalidQuestion", err)
	}
}

func TestChoice_FullRun(t *testing.T) {
	var completed []*Result
	qs := testQuestions(0, 1, 2)
	s := newStarted(t, ModeChapterQuiz, qs, OnComplete(func(r *Result) {
		completed = append(completed, r)
	}))

	for i, pick := range []int{0, 1, 3} {
		if s.Phase() != PhaseAwaitingAnswer {
			t.Fatalf("q%d: phase = %s, want awaiting-answer", i, s.Phase())
		}
		if got := len(s.Answers()); got != i {
			t.Fatalf("q%d: len(answers) = %d before submit, want %d", i, got, i)
		}
		if !s.SelectOption(pick) {
			t.Fatalf("q%d: SelectOption(%d) rejected", i, pick)
		}
		if !s.Submit() {
			t.Fatalf("q%d: Submit rejected", i)
		}
		if got := len(s.Answers()); got != i+1 {
			t.Fatalf("q%d: len(answers) = %d after submit, want %d", i, got, i+1)
		}
		if !s.Advance() {
			t.Fatalf("q%d: Advance rejected", i)
		}
	}

	if s.Phase() != PhaseComplete {
		t.Fatalf("phase = %s, want complete", s.Phase())
	}
	if len(completed) != 1 {
		t.Fatalf("completion hook called %d times, want 1", len(completed))
	}
	r := s.Result()
	if r.Score != 2 || r.Total() != 3 || r.Incorrect() != 1 {
		t.Errorf("result = score %d total %d incorrect %d, want 2/3/1", r.Score, r.Total(), r.Incorrect())
	}
	if r.Chapter != 3 || r.Mode != ModeChapterQuiz {
		t.Errorf("result chapter/mode = %d/%s", r.Chapter, r.Mode)
	}

	// Immutable after completion.
	if s.SelectOption(0) || s.Submit() || s.Advance() || s.Exit() {
		t.Error("operations on a completed session must be rejected")
	}
	if len(completed) != 1 {
		t.Errorf("completion hook called again")
	}
}

func TestChoice_Guards(t *testing.T) {
	s := newStarted(t, ModeStandard, testQuestions(1, 2))

	if s.Submit() {
		t.Error("Submit with no selection must be rejected")
	}
	if s.Advance() {
		t.Error("Advance before answering must be rejected")
	}
	for _, idx := range []int{-1, 4, 99} {
		if s.SelectOption(idx) {
			t.Errorf("SelectOption(%d) accepted", idx)
		}
	}
	if s.Tick(s.Token()) || s.RevealEarly() || s.SelfGrade(true) {
		t.Error("audio operations must be rejected in multiple-choice mode")
	}

	s.SelectOption(2)
	s.SelectOption(1) // changing the pending selection is allowed
	if s.Selected() != 1 {
		t.Errorf("Selected() = %d, want 1", s.Selected())
	}
	s.Submit()
	if s.Submit() {
		t.Error("second Submit must be rejected")
	}
	if s.SelectOption(3) {
		t.Error("SelectOption after Submit must be rejected")
	}
	if got := s.Answers(); len(got) != 1 || got[0] != 1 {
		t.Errorf("answers = %v, want [1]", got)
	}
	if !s.LastCorrect() {
		t.Error("LastCorrect() = false, want true")
	}
}

func TestStartRequired(t *testing.T) {
	s, err := New(ModeChapterQuiz, 1, testQuestions(0))
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseReady {
		t.Fatalf("phase = %s, want ready", s.Phase())
	}
	if s.SelectOption(0) {
		t.Error("SelectOption before Start must be rejected")
	}
	s.Start()
	if s.Start() {
		t.Error("second Start must be rejected")
	}
}

func TestCompletionOnlyFromLastQuestion(t *testing.T) {
	s := newStarted(t, ModeChapterQuiz, testQuestions(0, 0, 0))
	for i := 0; i < 2; i++ {
		s.SelectOption(0)
		s.Submit()
		s.Advance()
		if s.Phase() == PhaseComplete {
			t.Fatalf("completed early at index %d", i)
		}
	}
	if s.Index() != 2 || !s.IsLast() {
		t.Fatalf("Index() = %d, want 2 (last)", s.Index())
	}
	s.SelectOption(0)
	s.Submit()
	if s.Phase() != PhaseAnswered {
		t.Fatalf("phase = %s, want answered", s.Phase())
	}
	s.Advance()
	if s.Phase() != PhaseComplete {
		t.Fatalf("phase = %s, want complete", s.Phase())
	}
}

func TestAudio_SelfGradedRun(t *testing.T) {
	lc := &recordingLifecycle{}
	var result *Result
	qs := testQuestions(2, 3)
	s := newStarted(t, ModeAudioMock, qs, WithLifecycle(lc), WithCountdown(3),
		OnComplete(func(r *Result) { result = r }))

	if s.Phase() != PhasePresenting || s.Remaining() != 3 {
		t.Fatalf("phase = %s remaining = %d, want presenting/3", s.Phase(), s.Remaining())
	}
	if s.SelectOption(0) || s.Submit() || s.Advance() {
		t.Error("multiple-choice operations must be rejected in audio mode")
	}
	if s.SelfGrade(true) {
		t.Error("SelfGrade before reveal must be rejected")
	}

	// Countdown to zero reveals.
	tok := s.Token()
	for i := 0; i < 3; i++ {
		if !s.Tick(tok) {
			t.Fatalf("tick %d rejected", i)
		}
	}
	if s.Phase() != PhaseRevealed {
		t.Fatalf("phase after countdown = %s, want revealed", s.Phase())
	}
	if s.Tick(tok) {
		t.Error("tick after reveal must be rejected")
	}
	if !s.SelfGrade(true) {
		t.Fatal("SelfGrade rejected")
	}
	if s.SelfGrade(true) {
		t.Error("second SelfGrade for one question must be rejected")
	}

	// Second question: stale token from the first presentation is ignored.
	if s.Index() != 1 || s.Phase() != PhasePresenting {
		t.Fatalf("index %d phase %s, want 1/presenting", s.Index(), s.Phase())
	}
	if s.Tick(tok) {
		t.Error("stale tick accepted")
	}
	if s.Remaining() != 3 {
		t.Errorf("Remaining() = %d, want 3", s.Remaining())
	}
	if !s.RevealEarly() {
		t.Fatal("RevealEarly rejected")
	}
	s.SelfGrade(false)

	if result == nil {
		t.Fatal("completion hook not called")
	}
	if got := result.Answers; len(got) != 2 || got[0] != 2 || got[1] != Unknown {
		t.Errorf("answers = %v, want [2 -1]", got)
	}
	if result.Score != 1 {
		t.Errorf("score = %d, want 1", result.Score)
	}

	want := []string{"enter:0:1", "reveal", "leave", "enter:1:2", "reveal", "leave"}
	if fmt.Sprint(lc.calls) != fmt.Sprint(want) {
		t.Errorf("lifecycle calls = %v, want %v", lc.calls, want)
	}
}

func TestAudio_ExitCancelsTasks(t *testing.T) {
	lc := &recordingLifecycle{}
	var completed bool
	s := newStarted(t, ModeAudioMock, testQuestions(0, 1), WithLifecycle(lc),
		OnComplete(func(*Result) { completed = true }))

	if !s.Exit() {
		t.Fatal("Exit rejected")
	}
	if s.Phase() != PhaseExited || !s.Done() {
		t.Errorf("phase = %s, want exited", s.Phase())
	}
	if completed || s.Result() != nil {
		t.Error("exit must not complete the session")
	}
	if lc.calls[len(lc.calls)-1] != "leave" {
		t.Errorf("last lifecycle call = %q, want leave", lc.calls[len(lc.calls)-1])
	}
	if s.RevealEarly() || s.Tick(s.Token()) {
		t.Error("operations after exit must be rejected")
	}
}

func TestRestart(t *testing.T) {
	qs := testQuestions(0)
	s := newStarted(t, ModeStandard, qs)
	if _, err := s.Restart(); err == nil {
		t.Error("Restart of an unfinished session must fail")
	}
	s.SelectOption(1)
	s.Submit()
	s.Advance()

	again, err := s.Restart()
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if again.ID() == s.ID() {
		t.Error("restarted session must get a new ID")
	}
	if again.Phase() != PhaseReady || len(again.Answers()) != 0 {
		t.Errorf("restarted session not fresh: phase %s answers %v", again.Phase(), again.Answers())
	}
	if again.Mode() != ModeStandard || again.Total() != 1 {
		t.Errorf("restarted session mode/total = %s/%d", again.Mode(), again.Total())
	}
}

func TestRestart_ReplacesLifecycle(t *testing.T) {
	first := &recordingLifecycle{}
	s := newStarted(t, ModeAudioMock, testQuestions(2), WithLifecycle(first), WithCountdown(1))
	s.Tick(s.Token())
	s.SelfGrade(true)
	if !s.Done() {
		t.Fatalf("phase = %s, want complete", s.Phase())
	}

	second := &recordingLifecycle{}
	again, err := s.Restart(WithLifecycle(second))
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	before := len(first.calls)
	again.Start()
	if len(first.calls) != before {
		t.Errorf("old lifecycle called after restart: %v", first.calls[before:])
	}
	if len(second.calls) != 1 || second.calls[0] != "enter:0:1" {
		t.Errorf("new lifecycle calls = %v", second.calls)
	}
	if again.Countdown() != 1 {
		t.Errorf("Countdown() = %d, want the original option kept", again.Countdown())
	}
}

func TestResultTiming(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)
	now := start
	s := newStarted(t, ModeChapterQuiz, testQuestions(0), WithClock(func() time.Time { return now }))
	now = now.Add(90 * time.Second)
	s.SelectOption(0)
	s.Submit()
	s.Advance()

	r := s.Result()
	if r.Duration() != 90*time.Second {
		t.Errorf("Duration() = %v, want 1m30s", r.Duration())
	}
	if r.Percent() != 100 {
		t.Errorf("Percent() = %d, want 100", r.Percent())
	}
}

func TestModeRoundTrip(t *testing.T) {
	for _, m := range []Mode{ModeChapterQuiz, ModeStandard, ModeAudioMock} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if ModeChapterQuiz.IsMock() || !ModeAudioMock.IsMock() {
		t.Error("IsMock mismatch")
	}
}
