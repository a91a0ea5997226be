package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultCountdown is the number of seconds an audio question is presented
// before the answer is revealed.
const DefaultCountdown = 10

// ErrNoQuestions is returned when a session is created without questions.
var ErrNoQuestions = errors.New("no questions")

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseReady          Phase = iota // Created, first question not yet shown
	PhaseAwaitingAnswer              // Multiple choice: waiting for a submitted selection
	PhaseAnswered                    // Multiple choice: answer frozen, waiting for advance
	PhasePresenting                  // Audio: question read aloud, countdown running
	PhaseRevealed                    // Audio: answer shown, waiting for self-grade
	PhaseComplete                    // Graded; the session is immutable
	PhaseExited                      // Abandoned without completion
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseAnswered:
		return "answered"
	case PhasePresenting:
		return "presenting"
	case PhaseRevealed:
		return "revealed"
	case PhaseComplete:
		return "complete"
	case PhaseExited:
		return "exited"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Presentation describes the audio question being entered.
type Presentation struct {
	Index    int
	Question Question
	// Token identifies this presentation; ticks carrying another token are
	// ignored.
	Token   uint64
	Seconds int
}

// Lifecycle owns the side effects scoped to one presented audio question.
type Lifecycle interface {
	// Enter starts the countdown and schedules speech for a question.
	Enter(p Presentation)
	// Reveal stops the countdown and drops speech that has not started yet.
	// Speech already playing is allowed to finish.
	Reveal()
	// Leave cancels all tasks of the current question and waits for them to
	// exit.
	Leave()
}

type noLifecycle struct{}

func (noLifecycle) Enter(Presentation) {}
func (noLifecycle) Reveal() {}
func (noLifecycle) Leave() {}

// Option configures a Session.
type Option func(*Session)

// WithLifecycle sets the lifecycle driving audio question side effects.
func WithLifecycle(l Lifecycle) Option {
	return func(s *Session) {
		if l != nil {
			s.lifecycle = l
		}
	}
}

// WithCountdown overrides the audio countdown length in seconds.
func WithCountdown(seconds int) Option {
	return func(s *Session) {
		if seconds > 0 {
			s.countdown = seconds
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// OnComplete registers a hook invoked exactly once with the graded result.
func OnComplete(fn func(*Result)) Option {
	return func(s *Session) {
		s.onComplete = fn
	}
}

// Session is the quiz state machine. It is not safe for concurrent use; all
// calls are expected to come from a single event loop.
type Session struct {
	id        string
	mode      Mode
	chapter   int
	questions []Question
	rules     rules
	opts      []Option

	current   int
	selected  int
	answers   []int
	phase     Phase
	remaining int
	token     uint64

	countdown  int
	lifecycle  Lifecycle
	onComplete func(*Result)
	now        func() time.Time

	startedAt time.Time
	result    *Result
}

// New creates a session over questions. chapter is the active chapter for
// chapter quizzes and is ignored by mock exams.
func New(mode Mode, chapter int, questions []Question, opts ...Option) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	var r rules
	switch mode {
	case ModeChapterQuiz, ModeStandard:
		r = choiceRules{}
	case ModeAudioMock:
		r = audioRules{}
	default:
		return nil, fmt.Errorf("unknown mode %d", int(mode))
	}

	qs := make([]Question, len(questions))
	copy(qs, questions)

	s := &Session{
		id:        uuid.NewString(),
		mode:      mode,
		chapter:   chapter,
		questions: qs,
		rules:     r,
		opts:      opts,
		selected:  -1,
		answers:   make([]int, 0, len(qs)),
		phase:     PhaseReady,
		countdown: DefaultCountdown,
		lifecycle: noLifecycle{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start shows the first question. It returns false if already started.
func (s *Session) Start() bool {
	if s.phase != PhaseReady {
		return false
	}
	s.startedAt = s.now()
	s.rules.enter(s)
	return true
}

// SelectOption records idx as the pending selection of a multiple-choice
// question.
func (s *Session) SelectOption(idx int) bool { return s.rules.selectOption(s, idx) }

// Submit commits the pending selection as the answer to the current question.
func (s *Session) Submit() bool { return s.rules.submit(s) }

// Advance moves past an answered multiple-choice question, completing the
// session after the last one.
func (s *Session) Advance() bool { return s.rules.advance(s) }

// Tick counts the audio countdown down by one second. Ticks from a previous
// question's presentation are ignored. Reaching zero reveals the answer.
func (s *Session) Tick(token uint64) bool { return s.rules.tick(s, token) }

// RevealEarly shows the answer of the presented audio question before the
// countdown runs out.
func (s *Session) RevealEarly() bool { return s.rules.reveal(s) }

// SelfGrade records the learner's own verdict on a revealed audio question
// and moves on.
func (s *Session) SelfGrade(correct bool) bool { return s.rules.selfGrade(s, correct) }

// Exit abandons the session without grading it.
func (s *Session) Exit() bool {
	switch s.phase {
	case PhaseComplete, PhaseExited:
		return false
	case PhasePresenting, PhaseRevealed:
		s.lifecycle.Leave()
	}
	s.phase = PhaseExited
	return true
}

// Restart returns a fresh session over the same questions and mode. Only a
// completed session can be restarted. opts are applied after the options the
// session was created with.
func (s *Session) Restart(opts ...Option) (*Session, error) {
	if s.phase != PhaseComplete {
		return nil, fmt.Errorf("restart: session is %s", s.phase)
	}
	all := make([]Option, 0, len(s.opts)+len(opts))
	all = append(all, s.opts...)
	all = append(all, opts...)
	return New(s.mode, s.chapter, s.questions, all...)
}

func (s *Session) ID() string { return s.id }
func (s *Session) Mode() Mode { return s.mode }
func (s *Session) Chapter() int { return s.chapter }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Index() int { return s.current }
func (s *Session) Total() int { return len(s.questions) }
func (s *Session) Selected() int { return s.selected }
func (s *Session) Remaining() int { return s.remaining }
func (s *Session) Token() uint64 { return s.token }
func (s *Session) Result() *Result { return s.result }
func (s *Session) Done() bool { return s.phase == PhaseComplete || s.phase == PhaseExited }
func (s *Session) Current() Question { return s.questions[s.current] }
func (s *Session) IsLast() bool { return s.current == len(s.questions)-1 }
func (s *Session) Countdown() int { return s.countdown }

// Questions returns a copy of the question set.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Answers returns a copy of the committed answers.
func (s *Session) Answers() []int {
	out := make([]int, len(s.answers))
	copy(out, s.answers)
	return out
}

// LastCorrect reports whether the most recently committed answer is correct.
func (s *Session) LastCorrect() bool {
	n := len(s.answers)
	if n == 0 {
		return false
	}
	return s.answers[n-1] == s.questions[n-1].CorrectIndex
}

// next moves to the following question or completes the session.
func (s *Session) next() {
	if s.IsLast() {
		s.complete()
		return
	}
	s.current++
	s.rules.enter(s)
}

func (s *Session) complete() {
	if s.result != nil {
		return
	}
	answers := s.Answers()
	s.result = &Result{
		SessionID:   s.id,
		Mode:        s.mode,
		Chapter:     s.chapter,
		Questions:   s.Questions(),
		Answers:     answers,
		Score:       Grade(s.questions, answers),
		Correct:     Correctness(s.questions, answers),
		StartedAt:   s.startedAt,
		CompletedAt: s.now(),
	}
	s.phase = PhaseComplete
	s.selected = -1
	if s.onComplete != nil {
		s.onComplete(s.result)
	}
}
