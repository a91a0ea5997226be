// Package quiz runs a quiz session in the terminal: question loading, the
// multiple-choice and audio question views, and the result screen.
package quiz

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/revquiz/internal/content"
	"github.com/abhisek/revquiz/internal/progress"
	"github.com/abhisek/revquiz/internal/router"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/ui/layout"
)

// QuizScreen drives one session.
type QuizScreen struct {
	deps    *screen.Deps
	mode    session.Mode
	chapter int
	style   content.Style
	cancel  context.CancelFunc

	sess      *session.Session
	lifecycle *session.AudioLifecycle
	restartOf *session.Session

	completion  *progress.Completion // set by the session's completion hook
	resultShown bool

	loading     bool
	errMsg      string
	cursor      int
	speaking    bool
	speechErr   error
	confirmQuit bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// NewChapter creates a quiz over one chapter.
func NewChapter(deps *screen.Deps, chapter int) *QuizScreen {
	return &QuizScreen{deps: deps, mode: session.ModeChapterQuiz, chapter: chapter, cursor: -1}
}

// NewMock creates a cross-chapter mock exam. StyleAudio runs the read-aloud,
// self-graded variant.
func NewMock(deps *screen.Deps, style content.Style) *QuizScreen {
	mode := session.ModeStandard
	if style == content.StyleAudio {
		mode = session.ModeAudioMock
	}
	return &QuizScreen{deps: deps, mode: mode, style: style, cursor: -1}
}

// newRestart creates a quiz replaying the questions of a completed session.
func newRestart(deps *screen.Deps, prev *session.Session) *QuizScreen {
	return &QuizScreen{
		deps:      deps,
		mode:      prev.Mode(),
		chapter:   prev.Chapter(),
		restartOf: prev,
		cursor:    -1,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.sess != nil || s.loading {
		return nil
	}
	if s.restartOf != nil {
		prev := s.restartOf
		s.restartOf = nil
		sess, err := prev.Restart(s.sessionOptions()...)
		if err != nil {
			s.errMsg = err.Error()
			return nil
		}
		return s.begin(sess)
	}
	return s.fetch()
}

// Session exposes the running session; nil while loading.
func (s *QuizScreen) Session() *session.Session {
	return s.sess
}

func (s *QuizScreen) fetch() tea.Cmd {
	if s.deps.Content == nil {
		return router.Back("No LLM provider is configured.")
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.loading = true

	provider := s.deps.Content
	mode, chapter, style := s.mode, s.chapter, s.style
	chapterCount, mockCount := s.deps.ChapterCount, s.deps.MockCount
	return func() tea.Msg {
		var qs []session.Question
		var err error
		if mode == session.ModeChapterQuiz {
			qs, err = provider.ChapterQuestions(ctx, chapter, chapterCount)
		} else {
			qs, err = provider.MockExamQuestions(ctx, mockCount, style)
		}
		return questionsLoadedMsg{Questions: qs, Err: err}
	}
}

// sessionOptions builds the options for a new session. Audio sessions get a
// fresh lifecycle. Progress is recorded from the completion hook, which the
// session fires exactly once.
func (s *QuizScreen) sessionOptions() []session.Option {
	opts := []session.Option{
		session.WithCountdown(s.deps.Countdown),
		session.WithClock(s.deps.Clock()),
		session.OnComplete(s.record),
	}
	if s.mode == session.ModeAudioMock {
		s.lifecycle = session.NewAudioLifecycle(s.deps.Speaker,
			session.WithAudioLogger(s.deps.Log().Named("audio")))
		opts = append(opts, session.WithLifecycle(s.lifecycle))
	}
	return opts
}

func (s *QuizScreen) begin(sess *session.Session) tea.Cmd {
	s.sess = sess
	s.cursor = -1
	sess.Start()
	s.deps.Log().Info("session started",
		zap.String("session_id", sess.ID()),
		zap.Stringer("mode", sess.Mode()),
		zap.Int("chapter", sess.Chapter()),
		zap.Int("questions", sess.Total()),
	)
	if s.lifecycle != nil {
		return listen(s.lifecycle.Events())
	}
	return nil
}

// listen waits for the next audio event. It is re-armed after every event
// and returns nil once the lifecycle is closed.
func listen(events <-chan session.AudioEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return audioEventMsg(ev)
	}
}

// Close abandons an unfinished session and stops its background work.
func (s *QuizScreen) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.sess != nil && s.sess.Exit() {
		s.deps.Log().Info("session exited", zap.String("session_id", s.sess.ID()), zap.Int("index", s.sess.Index()))
	}
	if s.lifecycle != nil {
		s.lifecycle.Close()
	}
}

// HandlesEscape is true while a session is running so Esc asks before
// abandoning it.
func (s *QuizScreen) HandlesEscape() bool {
	return s.sess != nil && !s.sess.Done()
}

func (s *QuizScreen) Title() string {
	if s.mode == session.ModeChapterQuiz {
		return fmt.Sprintf("Chapter %d Quiz", s.chapter)
	}
	return s.mode.Label()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.sess == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}

	switch s.sess.Phase() {
	case session.PhaseAwaitingAnswer:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "A-D", Description: "Pick"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case session.PhaseAnswered:
		desc := "Next"
		if s.sess.IsLast() {
			desc = "Finish"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: desc},
			{Key: "Esc", Description: "Quit"},
		}
	case session.PhasePresenting:
		return []layout.KeyHint{
			{Key: "Space", Description: "Show answer"},
			{Key: "Esc", Description: "Quit"},
		}
	case session.PhaseRevealed:
		return []layout.KeyHint{
			{Key: "Y", Description: "I knew it"},
			{Key: "N", Description: "I missed it"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleLoaded(msg)

	case audioEventMsg:
		return s.handleAudio(session.AudioEvent(msg))

	case tea.KeyPressMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *QuizScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	s.cancel = nil
	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return s, nil
		}
		s.deps.Log().Warn("question fetch failed", zap.Stringer("mode", s.mode), zap.Error(msg.Err))
		return s, router.Back("Could not prepare the quiz: " + msg.Err.Error())
	}
	sess, err := session.New(s.mode, s.chapter, msg.Questions, s.sessionOptions()...)
	if err != nil {
		s.deps.Log().Warn("unusable question set", zap.Stringer("mode", s.mode), zap.Error(err))
		return s, router.Back("Could not prepare the quiz: " + err.Error())
	}
	return s, s.begin(sess)
}

func (s *QuizScreen) handleAudio(ev session.AudioEvent) (screen.Screen, tea.Cmd) {
	if s.sess == nil || s.lifecycle == nil {
		return s, nil
	}
	if ev.Token == s.sess.Token() {
		switch ev.Kind {
		case session.EventTick:
			s.sess.Tick(ev.Token)
		case session.EventSpeechStarted:
			s.speaking = true
			s.speechErr = nil
		case session.EventSpeechEnded:
			s.speaking = false
		case session.EventSpeechFailed:
			s.speaking = false
			s.speechErr = ev.Err
		}
	}
	return s, listen(s.lifecycle.Events())
}

func (s *QuizScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if s.sess == nil {
		if key == "esc" {
			return s, router.Pop()
		}
		return s, nil
	}

	if s.sess.Done() {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, router.Pop()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	switch s.sess.Phase() {
	case session.PhaseAwaitingAnswer:
		s.handleChoiceKey(key)
	case session.PhaseAnswered:
		if key == "enter" || key == "space" || key == "right" {
			s.sess.Advance()
			s.cursor = -1
		}
	case session.PhasePresenting:
		if key == "space" || key == "enter" {
			s.sess.RevealEarly()
		}
	case session.PhaseRevealed:
		switch key {
		case "y", "Y":
			s.sess.SelfGrade(true)
			s.resetAudioState()
		case "n", "N":
			s.sess.SelfGrade(false)
			s.resetAudioState()
		}
	}

	return s, s.finish()
}

func (s *QuizScreen) handleChoiceKey(key string) {
	n := len(s.sess.Current().Options)
	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		} else {
			s.cursor = 0
		}
		s.sess.SelectOption(s.cursor)
	case "down", "j":
		if s.cursor < n-1 {
			s.cursor++
		}
		s.sess.SelectOption(s.cursor)
	case "1", "2", "3", "4", "a", "b", "c", "d":
		idx := optionIndex(key)
		if idx < n {
			s.cursor = idx
			s.sess.SelectOption(idx)
			s.sess.Submit()
		}
	case "enter":
		s.sess.Submit()
	}
}

func optionIndex(key string) int {
	c := key[0]
	if c >= 'a' && c <= 'd' {
		return int(c - 'a')
	}
	return int(c - '1')
}

func (s *QuizScreen) resetAudioState() {
	s.speaking = false
	s.speechErr = nil
}

func (s *QuizScreen) record(r *session.Result) {
	c := s.deps.Progress.Complete(context.Background(), r)
	s.completion = &c
}

// finish shows the result once the session has been recorded. It navigates
// at most once per screen.
func (s *QuizScreen) finish() tea.Cmd {
	if s.completion == nil || s.resultShown {
		return nil
	}
	s.resultShown = true
	return router.Replace(newResult(s.deps, s.sess, *s.completion))
}
